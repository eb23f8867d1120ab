package operations

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func requireFileExists(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		if c.String(name) == "" {
			return errors.Errorf("flag '--%s' was not specified", name)
		}
		path, err := homedir.Expand(c.String(name))
		if err != nil {
			return errors.Wrapf(err, "expanding '%s'", c.String(name))
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			return errors.Errorf("file '%s' does not exist", path)
		}

		return nil
	}
}

// requireFileExistsIfSet is requireFileExists for optional flags.
func requireFileExistsIfSet(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		if c.String(name) == "" {
			return nil
		}
		return requireFileExists(name)(c)
	}
}
