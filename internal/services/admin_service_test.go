package services

import (
	"testing"

	"moneta/internal/models"
	"moneta/internal/security"
	"moneta/internal/testutil"
)

func TestRegisterAdmin(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		admin, err := svc.RegisterAdmin("root", "Sup3r$ecret")
		testutil.AssertNoError(t, err)

		if admin.Role != models.RoleAdmin {
			t.Errorf("expected role admin, got %s", admin.Role)
		}
		if admin.HashedPassword == "Sup3r$ecret" {
			t.Error("password stored in plaintext")
		}
		if !security.VerifyPassword("Sup3r$ecret", admin.HashedPassword) {
			t.Error("stored hash does not verify against the original password")
		}
	})

	t.Run("weak_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		_, err := svc.RegisterAdmin("root", "password")
		testutil.AssertAppError(t, err, "WEAK_PASSWORD")

		// A rejected registration must leave nothing behind.
		var count int64
		db.Model(&models.User{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no accounts after rejected registration, got %d", count)
		}
	})

	t.Run("username_held_by_admin", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		_, err := svc.RegisterAdmin("root", "Sup3r$ecret")
		testutil.AssertNoError(t, err)

		_, err = svc.RegisterAdmin("root", "Sup3r$ecret")
		testutil.AssertAppError(t, err, "ADMIN_EXISTS")
	})

	t.Run("storage_failure", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAdminService(db)

		sqlDB, err := db.DB()
		testutil.AssertNoError(t, err)
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}

		_, err = svc.RegisterAdmin("root", "Sup3r$ecret")
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")
	})

	t.Run("username_held_by_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		testutil.CreateTestUserWithUsername(t, db, "root")

		_, err := svc.RegisterAdmin("root", "Sup3r$ecret")
		testutil.AssertAppError(t, err, "ADMIN_EXISTS")
	})
}

func TestAdminExists(t *testing.T) {
	t.Run("no_admin", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		testutil.CreateTestUser(t, db)

		exists, err := svc.AdminExists()
		testutil.AssertNoError(t, err)
		if exists {
			t.Error("expected no admin")
		}
	})

	t.Run("with_admin", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		testutil.CreateTestAdmin(t, db, "root")

		exists, err := svc.AdminExists()
		testutil.AssertNoError(t, err)
		if !exists {
			t.Error("expected an admin")
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid_credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		admin := testutil.CreateTestAdmin(t, db, "root")

		token, err := svc.Login("root", "Passw0rd!")
		testutil.AssertNoError(t, err)
		if token == "" {
			t.Fatal("expected a token")
		}

		stored, err := svc.GetTokenByValue(token)
		testutil.AssertNoError(t, err)
		if stored.UserID != admin.ID {
			t.Errorf("expected token bound to admin %d, got %d", admin.ID, stored.UserID)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		testutil.CreateTestAdmin(t, db, "root")

		_, err := svc.Login("root", "wrong")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		_, err := svc.Login("nobody", "Passw0rd!")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("user_role_cannot_login", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		testutil.CreateTestUserWithUsername(t, db, "plain")

		_, err := svc.Login("plain", "Passw0rd!")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("relogin_rotates_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		testutil.CreateTestAdmin(t, db, "root")

		first, err := svc.Login("root", "Passw0rd!")
		testutil.AssertNoError(t, err)
		second, err := svc.Login("root", "Passw0rd!")
		testutil.AssertNoError(t, err)

		if first == second {
			t.Fatal("expected a fresh token on re-login")
		}

		_, err = svc.GetTokenByValue(first)
		testutil.AssertAppError(t, err, "UNAUTHORIZED")

		_, err = svc.GetTokenByValue(second)
		testutil.AssertNoError(t, err)
	})
}

func TestLogout(t *testing.T) {
	t.Run("revokes_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		testutil.CreateTestAdmin(t, db, "root")
		token, err := svc.Login("root", "Passw0rd!")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.Logout(token))

		_, err = svc.GetTokenByValue(token)
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})

	t.Run("unknown_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		err := svc.Logout("deadbeef")
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})

	t.Run("double_logout", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		testutil.CreateTestAdmin(t, db, "root")
		token, err := svc.Login("root", "Passw0rd!")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.Logout(token))
		testutil.AssertAppError(t, svc.Logout(token), "UNAUTHORIZED")
	})
}

func TestGetTokenByValue(t *testing.T) {
	t.Run("miss_is_unauthorized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		_, err := svc.GetTokenByValue("no-such-token")
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})

	t.Run("hit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		admin := testutil.CreateTestAdmin(t, db, "root")
		testutil.CreateTestAdminToken(t, db, admin.ID, "abc123")

		stored, err := svc.GetTokenByValue("abc123")
		testutil.AssertNoError(t, err)
		if stored.UserID != admin.ID {
			t.Errorf("expected user %d, got %d", admin.ID, stored.UserID)
		}
	})
}
