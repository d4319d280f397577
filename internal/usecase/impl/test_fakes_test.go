package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"time"

	"careerconnect/config"
	"careerconnect/internal/domain/entity"
	domainerrors "careerconnect/internal/domain/errors"
	"careerconnect/internal/domain/repository"
	"careerconnect/internal/domain/service"

	"github.com/google/uuid"
)

// In-memory fakes for the repository and service interfaces. They keep the
// tests free of a database while still exercising the real transaction and
// lookup paths.

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        4,
			MaxActiveSessions: 3,
			AccessTokenTTL:    15 * time.Minute,
			RefreshTokenTTL:   7 * 24 * time.Hour,
			OTPTTL:            10 * time.Minute,
		},
	}
}

// fakeStore is the shared backing state of all fake repositories.
type fakeStore struct {
	users        map[uuid.UUID]*entity.User
	auths        map[string]*entity.Authentication
	refreshToks  map[string]*entity.RefreshToken
	twoFactor    map[uuid.UUID]*entity.TwoFactorCode
	companies    map[uuid.UUID]*entity.Company
	joinRequests map[uuid.UUID]*entity.JoinRequest
	jobs         map[uuid.UUID]*entity.Job
	applications map[uuid.UUID]*entity.Application
	articles     map[uuid.UUID]*entity.Article
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[uuid.UUID]*entity.User),
		auths:        make(map[string]*entity.Authentication),
		refreshToks:  make(map[string]*entity.RefreshToken),
		twoFactor:    make(map[uuid.UUID]*entity.TwoFactorCode),
		companies:    make(map[uuid.UUID]*entity.Company),
		joinRequests: make(map[uuid.UUID]*entity.JoinRequest),
		jobs:         make(map[uuid.UUID]*entity.Job),
		applications: make(map[uuid.UUID]*entity.Application),
		articles:     make(map[uuid.UUID]*entity.Article),
	}
}

func authKey(provider, providerUserID string) string {
	return provider + "|" + providerUserID
}

// --- user repository ---

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u

	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u

			return &cp, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.s.users[user.ID] = &cp

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.s.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	cp := *user
	r.s.users[user.ID] = &cp

	return nil
}

func (r *fakeUserRepo) ListByCompany(_ context.Context, companyID uuid.UUID) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.s.users {
		if u.CompanyID != nil && *u.CompanyID == companyID {
			cp := *u
			out = append(out, &cp)
		}
	}

	return out, nil
}

// --- auth repository ---

type fakeAuthRepo struct{ s *fakeStore }

func (r *fakeAuthRepo) FindAuthentication(_ context.Context, provider, providerUserID string) (*entity.Authentication, error) {
	a, ok := r.s.auths[authKey(provider, providerUserID)]
	if !ok {
		return nil, repository.ErrAuthNotFound
	}
	cp := *a

	return &cp, nil
}

func (r *fakeAuthRepo) CreateAuthentication(_ context.Context, auth *entity.Authentication) error {
	if auth.ID == uuid.Nil {
		auth.ID = uuid.New()
	}
	cp := *auth
	r.s.auths[authKey(auth.Provider, auth.ProviderUserID)] = &cp

	return nil
}

func (r *fakeAuthRepo) UpdatePasswordHash(_ context.Context, auth *entity.Authentication) error {
	stored, ok := r.s.auths[authKey(auth.Provider, auth.ProviderUserID)]
	if !ok {
		return repository.ErrAuthNotFound
	}
	stored.PasswordHash = auth.PasswordHash

	return nil
}

// --- refresh token repository ---

type fakeRefreshTokenRepo struct{ s *fakeStore }

func (r *fakeRefreshTokenRepo) CreateRefreshToken(_ context.Context, token *entity.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	token.CreatedAt = time.Now()
	cp := *token
	r.s.refreshToks[token.TokenHash] = &cp

	return nil
}

func (r *fakeRefreshTokenRepo) FindRefreshTokenByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	t, ok := r.s.refreshToks[tokenHash]
	if !ok || time.Now().After(t.ExpiresAt) {
		return nil, repository.ErrRefreshTokenNotFound
	}
	cp := *t

	return &cp, nil
}

func (r *fakeRefreshTokenRepo) FindRefreshTokensByUserID(_ context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error) {
	var out []*entity.RefreshToken
	for _, t := range r.s.refreshToks {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}

	return out, nil
}

func (r *fakeRefreshTokenRepo) DeleteRefreshTokenByHash(_ context.Context, tokenHash string) error {
	if _, ok := r.s.refreshToks[tokenHash]; !ok {
		return repository.ErrRefreshTokenNotFound
	}
	delete(r.s.refreshToks, tokenHash)

	return nil
}

func (r *fakeRefreshTokenRepo) DeleteRefreshTokensByUserID(_ context.Context, userID uuid.UUID) error {
	for hash, t := range r.s.refreshToks {
		if t.UserID == userID {
			delete(r.s.refreshToks, hash)
		}
	}

	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpiredRefreshTokens(context.Context) error {
	for hash, t := range r.s.refreshToks {
		if time.Now().After(t.ExpiresAt) {
			delete(r.s.refreshToks, hash)
		}
	}

	return nil
}

// --- two-factor repository ---

type fakeTwoFactorRepo struct{ s *fakeStore }

func (r *fakeTwoFactorRepo) CreateCode(_ context.Context, code *entity.TwoFactorCode) error {
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	code.CreatedAt = time.Now()
	cp := *code
	r.s.twoFactor[code.ID] = &cp

	return nil
}

func (r *fakeTwoFactorRepo) FindActiveCode(_ context.Context, userID uuid.UUID, purpose entity.OTPPurpose) (*entity.TwoFactorCode, error) {
	var newest *entity.TwoFactorCode
	for _, c := range r.s.twoFactor {
		if c.UserID != userID || c.Purpose != purpose || c.Consumed || time.Now().After(c.ExpiresAt) {
			continue
		}
		if newest == nil || c.CreatedAt.After(newest.CreatedAt) {
			newest = c
		}
	}
	if newest == nil {
		return nil, repository.ErrTwoFactorCodeNotFound
	}
	cp := *newest

	return &cp, nil
}

func (r *fakeTwoFactorRepo) ConsumeCode(_ context.Context, id uuid.UUID) error {
	c, ok := r.s.twoFactor[id]
	if !ok || c.Consumed {
		return repository.ErrTwoFactorCodeNotFound
	}
	c.Consumed = true

	return nil
}

func (r *fakeTwoFactorRepo) DeleteExpiredCodes(context.Context) error {
	return nil
}

// --- company repository ---

type fakeCompanyRepo struct{ s *fakeStore }

func (r *fakeCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Company, error) {
	c, ok := r.s.companies[id]
	if !ok {
		return nil, repository.ErrCompanyNotFound
	}
	cp := *c

	return &cp, nil
}

func (r *fakeCompanyRepo) FindByName(_ context.Context, name string) (*entity.Company, error) {
	for _, c := range r.s.companies {
		if c.Name == name {
			cp := *c

			return &cp, nil
		}
	}

	return nil, repository.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *entity.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	company.CreatedAt = time.Now()
	company.UpdatedAt = company.CreatedAt
	cp := *company
	r.s.companies[company.ID] = &cp

	return nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, company *entity.Company) error {
	if _, ok := r.s.companies[company.ID]; !ok {
		return repository.ErrCompanyNotFound
	}
	cp := *company
	r.s.companies[company.ID] = &cp

	return nil
}

func (r *fakeCompanyRepo) List(context.Context, int, int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range r.s.companies {
		cp := *c
		out = append(out, &cp)
	}

	return out, nil
}

// --- join request repository ---

type fakeJoinRequestRepo struct{ s *fakeStore }

func (r *fakeJoinRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.JoinRequest, error) {
	jr, ok := r.s.joinRequests[id]
	if !ok {
		return nil, repository.ErrJoinRequestNotFound
	}
	cp := *jr

	return &cp, nil
}

func (r *fakeJoinRequestRepo) FindPendingByUser(_ context.Context, userID uuid.UUID) (*entity.JoinRequest, error) {
	for _, jr := range r.s.joinRequests {
		if jr.UserID == userID && jr.Status == entity.JoinRequestPending {
			cp := *jr

			return &cp, nil
		}
	}

	return nil, repository.ErrJoinRequestNotFound
}

func (r *fakeJoinRequestRepo) ListByCompany(_ context.Context, companyID uuid.UUID, status *entity.JoinRequestStatus) ([]*entity.JoinRequest, error) {
	var out []*entity.JoinRequest
	for _, jr := range r.s.joinRequests {
		if jr.CompanyID != companyID {
			continue
		}
		if status != nil && jr.Status != *status {
			continue
		}
		cp := *jr
		out = append(out, &cp)
	}

	return out, nil
}

func (r *fakeJoinRequestRepo) Create(_ context.Context, request *entity.JoinRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	request.CreatedAt = time.Now()
	cp := *request
	r.s.joinRequests[request.ID] = &cp

	return nil
}

func (r *fakeJoinRequestRepo) Update(_ context.Context, request *entity.JoinRequest) error {
	if _, ok := r.s.joinRequests[request.ID]; !ok {
		return repository.ErrJoinRequestNotFound
	}
	cp := *request
	r.s.joinRequests[request.ID] = &cp

	return nil
}

// --- job repository ---

type fakeJobRepo struct{ s *fakeStore }

func (r *fakeJobRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Job, error) {
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, repository.ErrJobNotFound
	}
	cp := *j

	return &cp, nil
}

func (r *fakeJobRepo) List(_ context.Context, filter entity.JobFilter) ([]*entity.Job, error) {
	var out []*entity.Job
	for _, j := range r.s.jobs {
		if filter.CompanyID != nil && j.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.RemoteOnly && !j.Remote {
			continue
		}
		cp := *j
		out = append(out, &cp)
	}

	return out, nil
}

func (r *fakeJobRepo) Create(_ context.Context, job *entity.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	cp := *job
	r.s.jobs[job.ID] = &cp

	return nil
}

func (r *fakeJobRepo) Update(_ context.Context, job *entity.Job) error {
	if _, ok := r.s.jobs[job.ID]; !ok {
		return repository.ErrJobNotFound
	}
	cp := *job
	r.s.jobs[job.ID] = &cp

	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.jobs[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(r.s.jobs, id)

	return nil
}

// --- application repository ---

type fakeApplicationRepo struct{ s *fakeStore }

func (r *fakeApplicationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Application, error) {
	a, ok := r.s.applications[id]
	if !ok {
		return nil, repository.ErrApplicationNotFound
	}
	cp := *a

	return &cp, nil
}

func (r *fakeApplicationRepo) FindByJobAndCandidate(_ context.Context, jobID, candidateID uuid.UUID) (*entity.Application, error) {
	for _, a := range r.s.applications {
		if a.JobID == jobID && a.CandidateID == candidateID {
			cp := *a

			return &cp, nil
		}
	}

	return nil, repository.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]*entity.Application, error) {
	var out []*entity.Application
	for _, a := range r.s.applications {
		if a.JobID == jobID {
			cp := *a
			out = append(out, &cp)
		}
	}

	return out, nil
}

func (r *fakeApplicationRepo) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]*entity.Application, error) {
	var out []*entity.Application
	for _, a := range r.s.applications {
		if a.CandidateID == candidateID {
			cp := *a
			out = append(out, &cp)
		}
	}

	return out, nil
}

func (r *fakeApplicationRepo) Create(_ context.Context, application *entity.Application) error {
	for _, a := range r.s.applications {
		if a.JobID == application.JobID && a.CandidateID == application.CandidateID {
			return repository.ErrDuplicateApplication
		}
	}
	if application.ID == uuid.Nil {
		application.ID = uuid.New()
	}
	application.CreatedAt = time.Now()
	application.UpdatedAt = application.CreatedAt
	cp := *application
	r.s.applications[application.ID] = &cp

	return nil
}

func (r *fakeApplicationRepo) Update(_ context.Context, application *entity.Application) error {
	if _, ok := r.s.applications[application.ID]; !ok {
		return repository.ErrApplicationNotFound
	}
	cp := *application
	r.s.applications[application.ID] = &cp

	return nil
}

// --- article repository ---

type fakeArticleRepo struct{ s *fakeStore }

func (r *fakeArticleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Article, error) {
	a, ok := r.s.articles[id]
	if !ok {
		return nil, repository.ErrArticleNotFound
	}
	cp := *a

	return &cp, nil
}

func (r *fakeArticleRepo) FindBySlug(_ context.Context, slug string) (*entity.Article, error) {
	for _, a := range r.s.articles {
		if a.Slug == slug {
			cp := *a

			return &cp, nil
		}
	}

	return nil, repository.ErrArticleNotFound
}

func (r *fakeArticleRepo) ListPublished(context.Context, int, int) ([]*entity.Article, error) {
	var out []*entity.Article
	for _, a := range r.s.articles {
		if a.Published {
			cp := *a
			out = append(out, &cp)
		}
	}

	return out, nil
}

func (r *fakeArticleRepo) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]*entity.Article, error) {
	var out []*entity.Article
	for _, a := range r.s.articles {
		if a.AuthorID == authorID {
			cp := *a
			out = append(out, &cp)
		}
	}

	return out, nil
}

func (r *fakeArticleRepo) Create(_ context.Context, article *entity.Article) error {
	for _, a := range r.s.articles {
		if a.Slug == article.Slug {
			return domainerrors.ErrSlugTaken
		}
	}
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt
	cp := *article
	r.s.articles[article.ID] = &cp

	return nil
}

func (r *fakeArticleRepo) Update(_ context.Context, article *entity.Article) error {
	if _, ok := r.s.articles[article.ID]; !ok {
		return repository.ErrArticleNotFound
	}
	cp := *article
	r.s.articles[article.ID] = &cp

	return nil
}

func (r *fakeArticleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.articles[id]; !ok {
		return repository.ErrArticleNotFound
	}
	delete(r.s.articles, id)

	return nil
}

// --- factory and transaction manager ---

type fakeFactory struct{ s *fakeStore }

func (f *fakeFactory) UserRepo() repository.UserRepository                 { return &fakeUserRepo{f.s} }
func (f *fakeFactory) AuthRepo() repository.AuthRepository                 { return &fakeAuthRepo{f.s} }
func (f *fakeFactory) RefreshTokenRepo() repository.RefreshTokenRepository { return &fakeRefreshTokenRepo{f.s} }
func (f *fakeFactory) TwoFactorRepo() repository.TwoFactorRepository       { return &fakeTwoFactorRepo{f.s} }
func (f *fakeFactory) CompanyRepo() repository.CompanyRepository           { return &fakeCompanyRepo{f.s} }
func (f *fakeFactory) JoinRequestRepo() repository.JoinRequestRepository   { return &fakeJoinRequestRepo{f.s} }
func (f *fakeFactory) JobRepo() repository.JobRepository                   { return &fakeJobRepo{f.s} }
func (f *fakeFactory) ApplicationRepo() repository.ApplicationRepository   { return &fakeApplicationRepo{f.s} }
func (f *fakeFactory) ArticleRepo() repository.ArticleRepository           { return &fakeArticleRepo{f.s} }

type fakeTxManager struct{ s *fakeStore }

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&fakeFactory{m.s})
}

// --- service fakes ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

func (fakeHasher) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password too short")
	}

	return nil
}

// fakeTokenService mints recognizable tokens rather than real JWTs.
type fakeTokenService struct {
	counter int
}

func (f *fakeTokenService) GenerateTokens(user *entity.User) (string, string, error) {
	f.counter++

	return fmt.Sprintf("access-%s-%d", user.ID, f.counter),
		fmt.Sprintf("refresh-%s-%d", user.ID, f.counter), nil
}

func (f *fakeTokenService) ValidateAccessToken(string) (*service.Claims, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	if len(tokenString) < 8+36 || tokenString[:8] != "refresh-" {
		return nil, fmt.Errorf("invalid refresh token")
	}
	userID, err := uuid.Parse(tokenString[8 : 8+36])
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	return &service.Claims{UserID: userID, TokenType: "refresh"}, nil
}

func (f *fakeTokenService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

func (f *fakeTokenService) GetRefreshTokenDuration() time.Duration {
	return 7 * 24 * time.Hour
}

type fakeOTPService struct {
	next string
}

func (f *fakeOTPService) Generate() (string, error) {
	if f.next == "" {
		return "123456", nil
	}

	return f.next, nil
}

func (f *fakeOTPService) Hash(code string) string {
	sum := sha256.Sum256([]byte(code))

	return hex.EncodeToString(sum[:])
}

type sentMail struct {
	To      string
	Code    string
	Subject string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) SendOTP(_ context.Context, to, code string) error {
	m.sent = append(m.sent, sentMail{To: to, Code: code, Subject: "otp"})

	return nil
}

func (m *fakeMailer) SendApplicationStatus(_ context.Context, to, jobTitle, status string) error {
	m.sent = append(m.sent, sentMail{To: to, Code: status, Subject: jobTitle})

	return nil
}

type fakeFileStorage struct {
	saved map[string]string
}

func (f *fakeFileStorage) Save(_ context.Context, key, _ string, content io.Reader) (string, error) {
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	data, _ := io.ReadAll(content)
	f.saved[key] = string(data)

	return "https://files.example.com/" + key, nil
}

func (f *fakeFileStorage) Delete(_ context.Context, key string) error {
	delete(f.saved, key)

	return nil
}
