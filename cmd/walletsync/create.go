package main

import (
	"context"
	"math"

	"github.com/tdex-network/walletsync/internal/core/application"
	"github.com/urfave/cli/v2"
)

var create = cli.Command{
	Name:  "create",
	Usage: "create a new wallet and save it on the remote store",
	Flags: []cli.Flag{
		passwordFlag,
		&cli.StringFlag{
			Name:  "language",
			Usage: "the language of the wallet, defaults to the configured one",
		},
		&cli.UintFlag{
			Name:  "iterations",
			Usage: "the number of PBKDF2 rounds, defaults to the configured one",
		},
	},
	Action: createAction,
}

func createAction(ctx *cli.Context) error {
	opts, err := createWalletOpts(ctx)
	if err != nil {
		return err
	}

	svc, err := newServices()
	if err != nil {
		return err
	}
	defer svc.close()

	wrapper, err := svc.walletService.CreateWallet(context.Background(), *opts)
	if err != nil {
		return err
	}

	printJSON(newWalletInfo(svc.stateHolder.Get().Status(), *wrapper))
	return nil
}

func createWalletOpts(ctx *cli.Context) (*application.CreateWalletOpts, error) {
	password := ctx.String(passwordFlag.Name)
	iterations := ctx.Uint("iterations")
	if len(password) <= 0 {
		return nil, &invalidUsageError{ctx, "create"}
	}
	if ctx.IsSet("iterations") && (iterations == 0 || iterations > math.MaxUint32) {
		return nil, &invalidUsageError{ctx, "create"}
	}

	return &application.CreateWalletOpts{
		Password:   password,
		Language:   ctx.String("language"),
		Iterations: uint32(iterations),
	}, nil
}
