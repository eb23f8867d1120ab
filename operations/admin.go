package operations

import (
	"context"
	"fmt"

	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"github.com/web420/web420/model/team"
)

func Admin() cli.Command {
	return cli.Command{
		Name:  "admin",
		Usage: "database administration",
		Subcommands: []cli.Command{
			adminPing(),
			adminSeed(),
			adminList(),
		},
	}
}

func adminPing() cli.Command {
	return cli.Command{
		Name:   "ping",
		Usage:  "check that the configured database answers",
		Flags:  optionalConfigFlags(),
		Before: requireFileExistsIfSet(confFlagName),
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			env, err := environmentFromFlags(ctx, c)
			if err != nil {
				return err
			}
			defer func() { grip.Warning(env.Close(ctx)) }()

			if err = env.Store().Ping(ctx); err != nil {
				return errors.WithStack(err)
			}

			fmt.Printf("database '%s' is reachable\n", env.Store().Name())
			return nil
		},
	}
}

// seedTeam is the team inserted by "admin seed".
func seedTeam() team.Team {
	t := team.Team{Name: "Wildcats", Mascot: "Cat"}
	t.AddPlayer(team.Player{FirstName: "Sam", LastName: "Lee", Salary: utility.ToFloat64Ptr(50000)})
	return t
}

func adminSeed() cli.Command {
	return cli.Command{
		Name:   "seed",
		Usage:  "insert a sample team for manual testing",
		Flags:  optionalConfigFlags(),
		Before: requireFileExistsIfSet(confFlagName),
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			env, err := environmentFromFlags(ctx, c)
			if err != nil {
				return err
			}
			defer func() { grip.Warning(env.Close(ctx)) }()

			t := seedTeam()
			if err = t.Insert(ctx, env.Store()); err != nil {
				return errors.WithStack(err)
			}

			grip.Info(message.Fields{
				"message": "seeded team",
				"team":    t.Id.Hex(),
				"players": len(t.Players),
			})
			fmt.Println(t.Id.Hex())

			return nil
		},
	}
}
