package operations

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"github.com/web420/web420"
)

const (
	confFlagName = "conf"

	// defaultConfigFileName is looked for in the user's home directory
	// when no --conf is given.
	defaultConfigFileName = ".web420.yml"
)

func joinFlagNames(ids ...string) string { return strings.Join(ids, ", ") }

// optionalConfigFlags is for commands that can run on default settings
// and environment overrides alone.
func optionalConfigFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(confFlagName, "config", "c"),
		Usage: "path to the service configuration file (~/" + defaultConfigFileName + ", then defaults and environment variables, when empty)",
	})
}

// findConfigFilePath expands a leading "~" in fn. An empty fn resolves
// to the home directory config file if there is one, and to "" otherwise.
func findConfigFilePath(fn string) (string, error) {
	if fn != "" {
		path, err := homedir.Expand(fn)
		return path, errors.Wrapf(err, "expanding config path '%s'", fn)
	}

	userHome, err := homedir.Dir()
	if err != nil {
		grip.Debug(errors.Wrap(err, "finding home directory"))
		return "", nil
	}

	path := filepath.Join(userHome, defaultConfigFileName)
	if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
		return path, nil
	}
	return "", nil
}

// environmentFromFlags connects to the database configured by --conf.
func environmentFromFlags(ctx context.Context, c *cli.Context) (web420.Environment, error) {
	path, err := findConfigFilePath(c.String(confFlagName))
	if err != nil {
		return nil, err
	}
	env, err := web420.NewEnvironment(ctx, path, nil)
	return env, errors.Wrap(err, "connecting to the database")
}
