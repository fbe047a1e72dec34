package services

import (
	"activitytracker/internal/auth"
	"activitytracker/internal/models"
	"activitytracker/internal/repository"
	"activitytracker/internal/testsupport"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db         *gorm.DB
	auth       *auth.Helper
	users      UserService
	activities ActivityService
	userRepo   repository.UserRepository
	actRepo    repository.ActivityRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testsupport.NewSQLiteDB(t)

	helper, err := auth.New(auth.Config{SigningKey: []byte("test-secret-key"), BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)

	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	actRepo := repository.NewActivityRepository(db)

	return &fixture{
		db:         db,
		auth:       helper,
		users:      NewUserService(tx, userRepo, helper),
		activities: NewActivityService(tx, userRepo, actRepo),
		userRepo:   userRepo,
		actRepo:    actRepo,
	}
}

func (f *fixture) register(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := f.users.Register(context.Background(), RegisterInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     email,
		Password:  "password123",
		Gender:    "F",
		Birthdate: "1990-04-21",
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) createActivity(t *testing.T, userID uint, name string) *models.Activity {
	t.Helper()
	activity, err := f.activities.CreateActivity(context.Background(), CreateActivityInput{
		Name:      name,
		Place:     "Central Park",
		Latitude:  40.785091,
		Longitude: -73.968285,
		Duration:  45,
		UserID:    userID,
	})
	require.NoError(t, err)
	return activity
}

func TestErrorMatching(t *testing.T) {
	wrapped := ErrActivityExists.with(errors.New("activity \"run\""))
	assert.ErrorIs(t, wrapped, ErrActivityExists)
	assert.NotErrorIs(t, wrapped, ErrEmailTaken)
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Contains(t, wrapped.Error(), "run")
	assert.Equal(t, "not_found", KindNotFound.String())
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.register(t, "jane@example.com")
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "password123", user.Password)
	assert.True(t, f.auth.VerifyPassword("password123", user.Password))
	assert.Equal(t, "1990-04-21", user.ToResponse().Birthdate)

	t.Run("duplicate email keeps first row", func(t *testing.T) {
		_, err := f.users.Register(ctx, RegisterInput{
			FirstName: "Other",
			Email:     "jane@example.com",
			Password:  "different",
			Birthdate: "2000-01-01",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)

		count, err := f.userRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		stored, err := f.userRepo.FindByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
		assert.Equal(t, "Jane", stored.FirstName)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []RegisterInput{
			{Email: "", Password: "x", Birthdate: "1990-01-01"},
			{Email: "a@example.com", Password: "", Birthdate: "1990-01-01"},
			{Email: "a@example.com", Password: "x", Birthdate: "21/04/1990"},
		}
		for _, in := range cases {
			_, err := f.users.Register(ctx, in)
			assert.Equal(t, KindValidation, KindOf(err), "%+v", in)
		}
	})
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "jane@example.com")

	token, err := f.users.Login(ctx, "jane@example.com", "password123")
	require.NoError(t, err)
	claims, err := f.auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, wrongPassword := f.users.Login(ctx, "jane@example.com", "nope")
	_, unknownEmail := f.users.Login(ctx, "ghost@example.com", "password123")
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestListUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	users, err := f.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	f.register(t, "a@example.com")
	f.register(t, "b@example.com")

	users, err = f.users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.Equal(t, "b@example.com", users[1].Email)
}

func TestDeleteUserCascadesActivities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	keep := f.register(t, "keep@example.com")
	gone := f.register(t, "gone@example.com")
	f.createActivity(t, gone.ID, "run")
	f.createActivity(t, gone.ID, "swim")
	kept := f.createActivity(t, keep.ID, "run")

	deleted, err := f.users.DeleteUser(ctx, gone.ID)
	require.NoError(t, err)
	assert.Equal(t, gone.ID, deleted.ID)
	assert.Equal(t, "gone@example.com", deleted.Email)

	_, err = f.userRepo.FindByID(ctx, gone.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	all, err := f.activities.ListActivities(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, kept.ID, all[0].ID)

	_, err = f.users.DeleteUser(ctx, gone.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// the email is free again after a hard delete
	f.register(t, "gone@example.com")
}

func TestCreateActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.register(t, "jane@example.com")
	john := f.register(t, "john@example.com")

	activity := f.createActivity(t, jane.ID, "Morning run")
	assert.NotZero(t, activity.ID)
	assert.False(t, activity.Date.IsZero())
	assert.Equal(t, jane.ID, activity.UserID)

	t.Run("duplicate name for same user", func(t *testing.T) {
		_, err := f.activities.CreateActivity(ctx, CreateActivityInput{Name: "Morning run", UserID: jane.ID})
		assert.ErrorIs(t, err, ErrActivityExists)
		assert.Contains(t, err.Error(), "Morning run")
	})

	t.Run("same name for another user", func(t *testing.T) {
		other, err := f.activities.CreateActivity(ctx, CreateActivityInput{Name: "Morning run", UserID: john.ID})
		require.NoError(t, err)
		assert.NotEqual(t, activity.ID, other.ID)
	})

	t.Run("unknown user inserts nothing", func(t *testing.T) {
		before, err := f.actRepo.Count(ctx)
		require.NoError(t, err)

		_, err = f.activities.CreateActivity(ctx, CreateActivityInput{Name: "Ghost walk", UserID: 9999})
		assert.ErrorIs(t, err, ErrUserNotFound)

		after, err := f.actRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("explicit date", func(t *testing.T) {
		created, err := f.activities.CreateActivity(ctx, CreateActivityInput{Name: "Evening swim", UserID: jane.ID, Date: "2024-05-01 18:30:00"})
		require.NoError(t, err)
		assert.Equal(t, "2024-05-01 18:30:00", created.ToResponse().Date)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := f.activities.CreateActivity(ctx, CreateActivityInput{Name: " ", UserID: jane.ID})
		assert.Equal(t, KindValidation, KindOf(err))

		_, err = f.activities.CreateActivity(ctx, CreateActivityInput{Name: "Yoga", UserID: jane.ID, Date: "yesterday"})
		assert.Equal(t, KindValidation, KindOf(err))
	})
}

func TestGetAndListActivities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	all, err := f.activities.ListActivities(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	jane := f.register(t, "jane@example.com")
	created := f.createActivity(t, jane.ID, "run")

	got, err := f.activities.GetActivity(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ToResponse(), got.ToResponse())

	_, err = f.activities.GetActivity(ctx, created.ID+100)
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestUpdateActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.register(t, "jane@example.com")
	run := f.createActivity(t, jane.ID, "run")
	f.createActivity(t, jane.ID, "swim")

	updated, err := f.activities.UpdateActivity(ctx, run.ID, UpdateActivityInput{
		Name:      "long run",
		Place:     "",
		Latitude:  1.5,
		Longitude: 2.5,
		Duration:  0,
		Date:      "2024-01-02 03:04:05",
	})
	require.NoError(t, err)

	stored, err := f.activities.GetActivity(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.ToResponse(), stored.ToResponse())
	assert.Equal(t, "long run", stored.Name)
	assert.Equal(t, "", stored.Place)
	assert.Equal(t, 0, stored.Duration)
	assert.Equal(t, "2024-01-02 03:04:05", stored.ToResponse().Date)
	assert.Equal(t, jane.ID, stored.UserID)

	_, err = f.activities.UpdateActivity(ctx, run.ID, UpdateActivityInput{Name: "swim", Date: "2024-01-02 03:04:05"})
	assert.ErrorIs(t, err, ErrActivityExists)

	_, err = f.activities.UpdateActivity(ctx, run.ID, UpdateActivityInput{Name: "long run", Date: "2024-01-02"})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = f.activities.UpdateActivity(ctx, 4242, UpdateActivityInput{Name: "x", Date: "2024-01-02 03:04:05"})
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestNonFiniteCoordinatesRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.register(t, "jane@example.com")
	run := f.createActivity(t, jane.ID, "run")

	tests := []struct {
		name      string
		latitude  float64
		longitude float64
	}{
		{"NaN latitude", math.NaN(), 0},
		{"positive infinity latitude", math.Inf(1), 0},
		{"negative infinity longitude", 0, math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.activities.CreateActivity(ctx, CreateActivityInput{
				Name:      "bad " + tt.name,
				Latitude:  tt.latitude,
				Longitude: tt.longitude,
				UserID:    jane.ID,
			})
			assert.Equal(t, KindValidation, KindOf(err))

			_, err = f.activities.UpdateActivity(ctx, run.ID, UpdateActivityInput{
				Name:      "run",
				Latitude:  tt.latitude,
				Longitude: tt.longitude,
				Date:      "2024-01-02 03:04:05",
			})
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}

	count, err := f.actRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := f.activities.GetActivity(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Latitude, stored.Latitude)
	assert.Equal(t, run.Longitude, stored.Longitude)
}

func TestUserScopedActivities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.register(t, "jane@example.com")
	john := f.register(t, "john@example.com")
	first := f.createActivity(t, jane.ID, "run")
	second := f.createActivity(t, jane.ID, "swim")
	johns := f.createActivity(t, john.ID, "ride")

	list, err := f.activities.ListUserActivities(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	_, err = f.activities.ListUserActivities(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	got, err := f.activities.GetUserActivity(ctx, jane.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = f.activities.GetUserActivity(ctx, jane.ID, johns.ID)
	assert.ErrorIs(t, err, ErrActivityNotFound)
	_, err = f.activities.GetUserActivity(ctx, 9999, first.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.activities.DeleteUserActivity(ctx, jane.ID, johns.ID)
	assert.ErrorIs(t, err, ErrActivityNotFound)

	deleted, err := f.activities.DeleteUserActivity(ctx, jane.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "run", deleted.Name)

	_, err = f.activities.GetUserActivity(ctx, jane.ID, first.ID)
	assert.ErrorIs(t, err, ErrActivityNotFound)

	list, err = f.activities.ListUserActivities(ctx, jane.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
