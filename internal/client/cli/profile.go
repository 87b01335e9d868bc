package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/stgmsg/internal/common"
)

// ShowProfile prints the authenticated account view.
func (a *App) ShowProfile(ctx context.Context) error {

	profile, err := a.messenger.Profile(ctx)
	if err != nil {
		log.Printf("Profile fetch failed: %v\n", err)
		return err
	}

	printlnFn("Username:   " + profile.Username)
	printlnFn("Registered: " + time.Unix(profile.CreatedAt, 0).Format(time.RFC3339))
	if profile.ProfileImageURL != "" {
		printlnFn("Image:      " + profile.ProfileImageURL)
	}

	return nil
}

// SetAvatar reads an image file from disk and uploads it as the profile
// picture.
func (a *App) SetAvatar(ctx context.Context) error {

	path, err := GetSimpleText(a.reader, "Path to image file", os.Stdout)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Cannot read %q: %v\n", path, err)
		return err
	}

	if err := a.messenger.SetProfileImage(ctx, data); err != nil {
		log.Printf("Avatar upload failed: %v\n", err)
		return err
	}

	printlnFn(fmt.Sprintf("Avatar updated (%d bytes)", len(data)))
	return nil
}

// ChangePassword interactively replaces the account password.
func (a *App) ChangePassword(ctx context.Context) error {

	password, err := GetPassword(os.Stdout, "Enter new password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := GetPassword(os.Stdout, "Repeat new password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		log.Println("Passwords do not match")
		return fmt.Errorf("password confirmation mismatch")
	}

	if err := a.messenger.ChangePassword(ctx, string(password)); err != nil {
		log.Printf("Password change failed: %v\n", err)
		return err
	}

	printlnFn("Password changed")
	return nil
}
