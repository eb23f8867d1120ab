package operations

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"github.com/web420/web420"
	"github.com/web420/web420/rest/client"
	"github.com/web420/web420/rest/model"
)

const (
	urlFlagName    = "url"
	teamIdFlagName = "team"
)

func serverURLFlag() cli.Flag {
	return cli.StringFlag{
		Name:   joinFlagNames(urlFlagName, "u"),
		Usage:  "base URL of a running API server",
		Value:  fmt.Sprintf("http://localhost:%d", web420.DefaultAPIPort),
		EnvVar: "WEB420_URL",
	}
}

// Client is the command group that talks to a running server over HTTP.
func Client() cli.Command {
	return cli.Command{
		Name:  "client",
		Usage: "query a running API server",
		Subcommands: []cli.Command{
			clientStatus(),
			clientPlayers(),
		},
	}
}

func withCommunicator(c *cli.Context, op func(context.Context, client.Communicator) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	comm := client.NewCommunicator(c.String(urlFlagName))
	defer comm.Close()

	return op(ctx, comm)
}

func clientStatus() cli.Command {
	return cli.Command{
		Name:  "status",
		Usage: "print the server build and whether its database answers",
		Flags: []cli.Flag{serverURLFlag()},
		Action: func(c *cli.Context) error {
			return withCommunicator(c, func(ctx context.Context, comm client.Communicator) error {
				status, err := comm.GetStatus(ctx)
				if err != nil {
					return errors.Wrap(err, "getting server status")
				}
				printStatus(os.Stdout, status)
				return nil
			})
		},
	}
}

func printStatus(w io.Writer, status *model.APIStatus) {
	t := newTable(w)
	t.AddHeader("Revision", "Version", "Database")
	db := "ok"
	if !status.DatabaseOK {
		db = utility.FromStringPtr(status.DatabaseError)
	}
	t.AddLine(utility.FromStringPtr(status.BuildRevision), utility.FromStringPtr(status.ClientVersion), db)
	t.Print()
}

func clientPlayers() cli.Command {
	return cli.Command{
		Name:  "players",
		Usage: "print the roster of a team",
		Flags: []cli.Flag{
			serverURLFlag(),
			cli.StringFlag{
				Name:  joinFlagNames(teamIdFlagName, "t"),
				Usage: "id of the team",
			},
		},
		Before: func(c *cli.Context) error {
			if c.String(teamIdFlagName) == "" {
				return errors.New("must specify a team id with --team")
			}
			return nil
		},
		Action: func(c *cli.Context) error {
			return withCommunicator(c, func(ctx context.Context, comm client.Communicator) error {
				players, err := comm.GetPlayers(ctx, c.String(teamIdFlagName))
				if err != nil {
					return errors.Wrap(err, "getting players")
				}
				printPlayers(os.Stdout, players)
				return nil
			})
		},
	}
}

func printPlayers(w io.Writer, players []model.APIPlayer) {
	t := newTable(w)
	t.AddHeader("First Name", "Last Name", "Salary")
	for _, p := range players {
		salary := ""
		if p.Salary != nil {
			salary = humanize.Commaf(*p.Salary)
		}
		t.AddLine(utility.FromStringPtr(p.FirstName), utility.FromStringPtr(p.LastName), salary)
	}
	fmt.Fprintf(w, "%d players:\n", len(players))
	t.Print()
}
