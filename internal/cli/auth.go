package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dmitrijs2005/savelinks/internal/common"
)

// Register prompts for a username and a password twice and creates the
// account. A confirmation mismatch aborts without touching storage.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return nil
	}

	if err := a.authService.Register(ctx, userName, password); err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err)
		return nil
	}

	fmt.Fprintln(a.out, "Registration successful. You can now log in.")
	return nil
}

// Login prompts for credentials and, on success, opens the session.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, key, err := a.authService.Authenticate(ctx, userName, password)
	if err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return nil
	}

	a.userID, a.userName, a.masterKey = id, userName, key
	fmt.Fprintf(a.out, "Welcome, %s!\n", userName)
	return nil
}

// Logout wipes the session key.
func (a *App) Logout(_ context.Context) error {
	a.endSession()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
