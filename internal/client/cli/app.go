// Package cli implements the interactive client: server discovery, account
// commands and the messaging loop.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/stgmsg/internal/client/api"
	"github.com/dmitrijs2005/stgmsg/internal/client/config"
	"github.com/dmitrijs2005/stgmsg/internal/client/services"
	"github.com/dmitrijs2005/stgmsg/internal/common"
	"github.com/dmitrijs2005/stgmsg/internal/cryptox"
	"github.com/dmitrijs2005/stgmsg/internal/discovery"
)

type App struct {
	config    *config.Config
	messenger *services.Messenger
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.messenger != nil && a.messenger.IsLoggedIn()
}

// connect resolves the relay address (discovering over mDNS when none is
// configured), collects the shared secret and builds the messenger. Called
// once at startup; the discover command can re-run the resolution later.
func (a *App) connect(ctx context.Context) error {

	addr := a.config.ServerEndpointAddr
	if addr == "" {
		chosen, err := a.chooseServer(ctx)
		if err != nil {
			return err
		}
		addr = chosen
	}

	secret := a.config.SharedSecret
	if secret == "" {
		entered, err := GetPassword(os.Stdout, "Enter shared secret: ")
		if err != nil {
			return err
		}
		secret = string(entered)
		common.WipeByteArray(entered)
	}

	a.messenger = services.NewMessenger(
		api.NewClient(addr),
		&cryptox.PBKDF2Deriver{Secret: []byte(secret)},
	)

	return nil
}

// chooseServer browses the LAN and lets the user pick one of the advertised
// relays.
func (a *App) chooseServer(ctx context.Context) (string, error) {

	printlnFn("Looking for servers on the local network...")

	records, err := discovery.Browse(ctx, a.config.BrowseTimeout)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", common.ErrDiscoveryUnavailable
	}

	for i, r := range records {
		printlnFn(fmt.Sprintf("  [%d] %s (%s)", i+1, r.Name, r.Addr()))
	}

	choice, err := GetSimpleText(a.reader, "Select a server by number", os.Stdout)
	if err != nil {
		return "", err
	}

	var idx int
	if _, err := fmt.Sscanf(choice, "%d", &idx); err != nil || idx < 1 || idx > len(records) {
		return "", fmt.Errorf("invalid selection: %q", choice)
	}

	return records[idx-1].Addr(), nil
}

func (a *App) Run(ctx context.Context) {

	log.Println("Welcome to stgmsg CLI (type 'help' for commands)")

	if err := a.connect(ctx); err != nil {
		log.Printf("connection setup failed: %v", err)
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	if a.isLoggedIn() {
		return fmt.Sprintf("(%s)", a.messenger.Username())
	}
	return ""
}
