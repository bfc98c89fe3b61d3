package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var resync = cli.Command{
	Name:   "resync",
	Usage:  "load a wallet and save it again on the remote store",
	Flags:  []cli.Flag{guidFlag, passwordFlag},
	Action: resyncAction,
}

func resyncAction(ctx *cli.Context) error {
	guid, password, err := walletCredentials(ctx, "resync")
	if err != nil {
		return err
	}

	svc, err := newServices()
	if err != nil {
		return err
	}
	defer svc.close()

	if _, err := svc.walletService.LoadWallet(
		context.Background(), guid, password,
	); err != nil {
		return err
	}

	wrapper, err := svc.walletService.Resync(context.Background())
	if err != nil {
		return err
	}

	printJSON(newWalletInfo(svc.stateHolder.Get().Status(), *wrapper))
	return nil
}
