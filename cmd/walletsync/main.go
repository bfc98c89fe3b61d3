package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/walletsync/internal/config"
	"github.com/urfave/cli/v2"
)

var (
	guidFlag = &cli.StringFlag{
		Name:     "guid",
		Usage:    "the guid of the wallet",
		Required: true,
	}
	passwordFlag = &cli.StringFlag{
		Name:     "password",
		Usage:    "the password of the wallet",
		EnvVars:  []string{"WALLETSYNC_PASSWORD"},
		Required: true,
	}
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "walletsync"
	app.Usage = "Create, load, upgrade and sync encrypted wallets with a remote store"
	app.Before = func(_ *cli.Context) error {
		if err := config.InitConfig(); err != nil {
			return err
		}
		log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
		return nil
	}
	app.Commands = append(
		app.Commands,
		&create,
		&load,
		&upgrade,
		&resync,
		&info,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func printJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(string(jsonBytes))
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

// walletCredentials returns the guid and password given to a command acting
// on an existing wallet.
func walletCredentials(ctx *cli.Context, command string) (string, string, error) {
	guid := strings.TrimSpace(ctx.String(guidFlag.Name))
	password := ctx.String(passwordFlag.Name)
	if len(guid) <= 0 || len(password) <= 0 {
		return "", "", &invalidUsageError{ctx, command}
	}
	return guid, password, nil
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[walletsync] %v\n", err)
	}
	os.Exit(1)
}
