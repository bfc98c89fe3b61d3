package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var load = cli.Command{
	Name:   "load",
	Usage:  "fetch and decrypt a wallet from the remote store",
	Flags:  []cli.Flag{guidFlag, passwordFlag},
	Action: loadAction,
}

func loadAction(ctx *cli.Context) error {
	guid, password, err := walletCredentials(ctx, "load")
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

	fmt.Printf("wallet %s loaded at version %s\n", wrapper.GUID(), wrapper.Version)
	if svc.upgradeService.NeedsUpgrade(*wrapper) {
		fmt.Println("run the upgrade command to move it to the latest version")
	}
	return nil
}
