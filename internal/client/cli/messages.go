package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/stgmsg/internal/common"
)

// Send interactively composes, encrypts and relays a message.
func (a *App) Send(ctx context.Context) error {

	to, err := GetSimpleText(a.reader, "Recipient username", os.Stdout)
	if err != nil {
		return err
	}

	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}

	text, err := GetMultiline(a.reader, "Message text", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.messenger.Send(ctx, to, title, text); err != nil {
		switch {
		case errors.Is(err, common.ErrUnknownRecipient):
			log.Printf("No such user: %q\n", to)
		case errors.Is(err, common.ErrStorageFull):
			log.Printf("%s's inbox is full\n", to)
		case errors.Is(err, common.ErrBodyTooLarge):
			log.Println("Message is too large")
		case errors.Is(err, common.ErrEmptyBody):
			log.Println("Message text must not be empty")
		default:
			log.Printf("Send failed: %v\n", err)
		}
		return err
	}

	printlnFn("Message sent to " + to)
	return nil
}

// Inbox fetches, decrypts and prints the inbox.
func (a *App) Inbox(ctx context.Context) error {

	items, err := a.messenger.Inbox(ctx)
	if err != nil {
		log.Printf("Inbox fetch failed: %v\n", err)
		return err
	}

	if len(items) == 0 {
		printlnFn("Inbox is empty")
		return nil
	}

	for _, item := range items {
		ts := time.Unix(0, item.CreatedAt).Format(time.RFC3339)
		if item.Undecryptable {
			printlnFn(fmt.Sprintf("[%s] from %s: %s\n  <cannot decrypt: shared secret mismatch>", ts, item.From, item.Title))
			continue
		}
		printlnFn(fmt.Sprintf("[%s] from %s: %s\n  %s", ts, item.From, item.Title, item.Text))
	}

	return nil
}
