package commands

import "github.com/mamaar/ngessentials/internal/cli"

// Register adds every ng-essentials command to app
func Register(app *cli.App) {
	app.RegisterCommand(
		NewApplyCommand(app),
		NewStatusCommand(app),
		NewVersionsCommand(app),
		NewVersionCommand(app),
	)
}
