package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khanhvu/devconnect/internal/domain/profile"
	"github.com/khanhvu/devconnect/internal/domain/user"
	"github.com/khanhvu/devconnect/pkg/apperror"
	"github.com/khanhvu/devconnect/pkg/logger"
)

type ProfileRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	profileRepo profile.Repository
	userDir     user.Directory
	testOwner   *user.User
}

func (s *ProfileRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.profileRepo = NewPostgresProfileRepo(s.dbPool, logger.NewNop())
	s.userDir = NewPostgresUserDirectory(s.dbPool)

	s.testOwner = &user.User{
		ID:     uuid.New(),
		Name:   "Test Owner",
		Avatar: "https://gravatar.example/owner",
	}
	s.seedUser(s.testOwner)
}

func (s *ProfileRepoIntegrationTestSuite) seedUser(u *user.User) {
	query := `INSERT INTO users (id, name, avatar) VALUES ($1, $2, $3)`
	_, err := s.dbPool.Exec(context.Background(), query, u.ID, u.Name, u.Avatar)
	if err != nil {
		s.T().Fatalf("Failed to seed user: %s", err)
	}
}

func (s *ProfileRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestProfileRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(ProfileRepoIntegrationTestSuite))
}

func newTestProfile(userID uuid.UUID, handle string) *profile.Profile {
	return &profile.Profile{
		UserID: userID,
		Handle: handle,
		Status: "Developer",
		Skills: []string{"Go", "SQL"},
		Social: profile.SocialLinks{
			Twitter: "https://twitter.example/" + handle,
		},
		Experience: []profile.Experience{},
		Education:  []profile.Education{},
		UpdatedAt:  time.Now().UTC(),
	}
}

func (s *ProfileRepoIntegrationTestSuite) Test_Create_And_FindByUserID() {
	ctx := context.Background()

	newProfile := newTestProfile(s.testOwner.ID, "test-owner")
	s.NoError(s.profileRepo.Create(ctx, newProfile))

	found, err := s.profileRepo.FindByUserID(ctx, s.testOwner.ID)

	s.NoError(err)
	s.NotNil(found)
	s.Equal("test-owner", found.Handle)
	s.Equal([]string{"Go", "SQL"}, found.Skills)
	s.Equal("https://twitter.example/test-owner", found.Social.Twitter)
	s.Empty(found.Experience)
}

func (s *ProfileRepoIntegrationTestSuite) Test_FindByHandle_NotFound() {
	ctx := context.Background()

	_, err := s.profileRepo.FindByHandle(ctx, "nobody-here")

	s.Error(err)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Create_DuplicateHandleConflicts() {
	ctx := context.Background()

	first := &user.User{ID: uuid.New(), Name: "First", Avatar: "a"}
	second := &user.User{ID: uuid.New(), Name: "Second", Avatar: "a"}
	s.seedUser(first)
	s.seedUser(second)

	s.NoError(s.profileRepo.Create(ctx, newTestProfile(first.ID, "shared-handle")))

	err := s.profileRepo.Create(ctx, newTestProfile(second.ID, "shared-handle"))

	s.Error(err)
	s.ErrorIs(err, apperror.ErrConflict)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Update_ReplacesEmbeddedLists() {
	ctx := context.Background()

	owner := &user.User{ID: uuid.New(), Name: "Lists", Avatar: "a"}
	s.seedUser(owner)

	p := newTestProfile(owner.ID, "lists-owner")
	s.NoError(s.profileRepo.Create(ctx, p))

	from := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	p.Experience = []profile.Experience{
		{ID: uuid.New(), Title: "Engineer", Company: "Acme", From: from},
	}
	p.Education = []profile.Education{
		{ID: uuid.New(), School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: from},
	}
	p.UpdatedAt = time.Now().UTC()
	s.NoError(s.profileRepo.Update(ctx, p))

	found, err := s.profileRepo.FindByUserID(ctx, owner.ID)

	s.NoError(err)
	s.Len(found.Experience, 1)
	s.Equal("Engineer", found.Experience[0].Title)
	s.Len(found.Education, 1)
	s.Equal("MIT", found.Education[0].School)
}

func (s *ProfileRepoIntegrationTestSuite) Test_DeleteByUserID_IsIdempotent() {
	ctx := context.Background()

	owner := &user.User{ID: uuid.New(), Name: "Gone", Avatar: "a"}
	s.seedUser(owner)

	s.NoError(s.profileRepo.Create(ctx, newTestProfile(owner.ID, "gone-owner")))
	s.NoError(s.profileRepo.DeleteByUserID(ctx, owner.ID))

	_, err := s.profileRepo.FindByUserID(ctx, owner.ID)
	s.ErrorIs(err, apperror.ErrNotFound)

	s.NoError(s.profileRepo.DeleteByUserID(ctx, owner.ID))
}

func (s *ProfileRepoIntegrationTestSuite) Test_UserDirectory_FindAndDelete() {
	ctx := context.Background()

	u := &user.User{ID: uuid.New(), Name: "Directory", Avatar: "https://gravatar.example/dir"}
	s.seedUser(u)

	found, err := s.userDir.FindByID(ctx, u.ID)
	s.NoError(err)
	s.Equal("Directory", found.Name)

	byIDs, err := s.userDir.FindByIDs(ctx, []uuid.UUID{u.ID, uuid.New()})
	s.NoError(err)
	s.Len(byIDs, 1)
	s.Equal(u.Name, byIDs[u.ID].Name)

	s.NoError(s.userDir.Delete(ctx, u.ID))
	_, err = s.userDir.FindByID(ctx, u.ID)
	s.ErrorIs(err, apperror.ErrNotFound)

	s.NoError(s.userDir.Delete(ctx, u.ID))
}
