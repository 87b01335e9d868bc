package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/stgmsg/internal/common"
)

// Register interactively creates an account on the relay.
func (a *App) Register(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.messenger.Register(ctx, username, string(password)); err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			log.Printf("Username %q is already taken\n", username)
		} else {
			log.Printf("Registration failed: %v\n", err)
		}
		return err
	}

	printlnFn("Registered. You can log in now.")
	return nil
}

// Login interactively authenticates against the relay.
func (a *App) Login(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.messenger.Login(ctx, username, string(password)); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			log.Println("Invalid username or password")
		} else {
			log.Printf("Login failed: %v\n", err)
		}
		return err
	}

	printlnFn("Logged in as " + username)
	return nil
}

// Logout revokes the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.messenger.Logout(ctx); err != nil {
		log.Printf("Logout failed: %v\n", err)
		return err
	}
	printlnFn("Logged out")
	return nil
}
