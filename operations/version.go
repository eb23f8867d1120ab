package operations

import (
	"fmt"

	"github.com/urfave/cli"
	"github.com/web420/web420"
)

func Version() cli.Command {
	return cli.Command{
		Name:  "version",
		Usage: "prints the revision of the current binary",
		Action: func(c *cli.Context) error {
			fmt.Println(web420.ClientVersion)
			if web420.BuildRevision != "" {
				fmt.Println(web420.BuildRevision)
			}
			return nil
		},
	}
}
