package main

import (
	"careerconnect/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.AuthenticationModel{},
		model.RefreshTokenModel{},
		model.TwoFactorCodeModel{},
		model.CompanyModel{},
		model.JoinRequestModel{},
		model.JobModel{},
		model.ApplicationModel{},
		model.ArticleModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
