package main

import (
	"context"

	"github.com/tdex-network/walletsync/internal/core/application"
	"github.com/tdex-network/walletsync/internal/core/domain"
	"github.com/tdex-network/walletsync/pkg/wallet"
	"github.com/urfave/cli/v2"
)

var info = cli.Command{
	Name:   "info",
	Usage:  "show the structure of a wallet without its keys",
	Flags:  []cli.Flag{guidFlag, passwordFlag},
	Action: infoAction,
}

type derivationInfo struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

type accountInfo struct {
	Index             int              `json:"index"`
	Label             string           `json:"label"`
	Archived          bool             `json:"archived"`
	DefaultDerivation string           `json:"default_derivation"`
	Derivations       []derivationInfo `json:"derivations"`
}

type walletInfo struct {
	GUID             string        `json:"guid"`
	Status           string        `json:"status"`
	Version          string        `json:"version"`
	NeedsUpgrade     bool          `json:"needs_upgrade"`
	Checksum         string        `json:"payload_checksum"`
	Language         string        `json:"language"`
	PBKDF2Iterations uint32        `json:"pbkdf2_iterations"`
	ImportedAddrs    int           `json:"imported_addresses"`
	Accounts         []accountInfo `json:"accounts,omitempty"`
}

func newWalletInfo(
	status application.WalletStatus, wrapper domain.Wrapper,
) walletInfo {
	info := walletInfo{
		GUID:             wrapper.GUID(),
		Status:           status.String(),
		Version:          wrapper.Version.String(),
		Checksum:         wrapper.PayloadChecksum,
		Language:         wrapper.Language,
		PBKDF2Iterations: wrapper.PBKDF2Iterations,
		ImportedAddrs:    len(wrapper.Wallet.Addresses),
	}

	hd, err := wrapper.Wallet.DefaultHDWallet()
	if err != nil {
		return info
	}
	for _, a := range hd.Accounts {
		derivations := make([]derivationInfo, 0, len(a.Derivations))
		for _, d := range a.Derivations {
			path := wallet.NewAccountDerivationPath(d.Purpose, uint32(a.Index))
			derivations = append(derivations, derivationInfo{
				Type: string(d.Type),
				Path: path.String(),
			})
		}
		info.Accounts = append(info.Accounts, accountInfo{
			Index:             a.Index,
			Label:             a.Label,
			Archived:          a.Archived,
			DefaultDerivation: string(a.DefaultDerivation),
			Derivations:       derivations,
		})
	}
	return info
}

func infoAction(ctx *cli.Context) error {
	guid, password, err := walletCredentials(ctx, "info")
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

	summary := newWalletInfo(svc.stateHolder.Get().Status(), *wrapper)
	summary.NeedsUpgrade = svc.upgradeService.NeedsUpgrade(*wrapper)
	printJSON(summary)
	return nil
}
