package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var upgrade = cli.Command{
	Name:   "upgrade",
	Usage:  "upgrade a wallet to the latest version and save it on the remote store",
	Flags:  []cli.Flag{guidFlag, passwordFlag},
	Action: upgradeAction,
}

func upgradeAction(ctx *cli.Context) error {
	guid, password, err := walletCredentials(ctx, "upgrade")
	if err != nil {
		return err
	}

	svc, err := newServices()
	if err != nil {
		return err
	}
	defer svc.close()

	wrapper, err := svc.walletService.LoadWallet(
		context.Background(), guid, password,
	)
	if err != nil {
		return err
	}

	if !svc.upgradeService.NeedsUpgrade(*wrapper) {
		fmt.Println()
		fmt.Printf("wallet is already at version %s\n", wrapper.Version)
		return nil
	}

	from := wrapper.Version
	upgraded, err := svc.upgradeService.UpgradeAndSync(
		context.Background(), *wrapper, password,
	)
	if err != nil {
		return err
	}
	log.Debugf("wallet upgraded from version %s to %s", from, upgraded.Version)

	printJSON(newWalletInfo(svc.stateHolder.Get().Status(), *upgraded))
	return nil
}
