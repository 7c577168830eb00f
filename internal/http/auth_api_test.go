package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"webstore/internal/repos"
)

func TestSeededPasswordsAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM customers`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no customers seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "Passw0rd!") {
			t.Fatal("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("Passw0rd!")); err != nil {
			t.Fatalf("seed hash does not validate known password: %v", err)
		}
	}
}

func TestLoginIssuesToken(t *testing.T) {
	app := newAPIApp(t)

	tok := loginAs(t, app, "alice@webstore.test")

	// the token authenticates follow-up requests
	req := jsonReq(t, "GET", "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("token rejected: %d", resp.StatusCode)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newAPIApp(t)

	cases := []map[string]string{
		{"email": "alice@webstore.test", "password": "Wrongpass1!"},
		{"email": "ghost@webstore.test", "password": "Passw0rd!"},
		{"email": "not-an-email", "password": "Passw0rd!"},
	}
	for _, c := range cases {
		resp, err := app.Test(jsonReq(t, "POST", "/api/login", c))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%v: want 401, got %d", c["email"], resp.StatusCode)
		}
		// same generic message for every failure mode
		if msg := decodeBody(t, resp)["error"]; msg != "invalid email or password" {
			t.Fatalf("failure detail leaked: %v", msg)
		}
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	app := newAPIApp(t)
	tok := loginAs(t, app, "alice@webstore.test")

	out := jsonReq(t, "POST", "/api/logout", nil)
	out.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(out)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: want 204, got %d", resp.StatusCode)
	}

	req := jsonReq(t, "GET", "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("stale token still works: %d", resp.StatusCode)
	}
}
