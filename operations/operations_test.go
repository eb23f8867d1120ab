package operations

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/evergreen-ci/utility"
	"github.com/mitchellh/go-homedir"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/grip/send"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	"github.com/web420/web420/model/composer"
	"github.com/web420/web420/model/team"
	"github.com/web420/web420/rest/client"
	"github.com/web420/web420/rest/data"
	"github.com/web420/web420/rest/model"
	resttestutil "github.com/web420/web420/rest/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func contextWithConf(t *testing.T, value string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String(confFlagName, "", "")
	require.NoError(t, set.Parse([]string{"--" + confFlagName, value}))
	return cli.NewContext(nil, set, nil)
}

func TestRequireFileExistsIfSet(t *testing.T) {
	check := requireFileExistsIfSet(confFlagName)

	assert.NoError(t, check(contextWithConf(t, "")))
	assert.Error(t, check(contextWithConf(t, filepath.Join(t.TempDir(), "missing.yml"))))

	conf := filepath.Join(t.TempDir(), "web420.yml")
	require.NoError(t, os.WriteFile(conf, []byte("api:\n  port: 8080\n"), 0600))
	assert.NoError(t, check(contextWithConf(t, conf)))
}

func TestRequireFileExists(t *testing.T) {
	err := requireFileExists(confFlagName)(contextWithConf(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--conf")
}

func TestFindConfigFilePath(t *testing.T) {
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := findConfigFilePath("~/conf/web420.yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "conf", "web420.yml"), path)

	path, err = findConfigFilePath("/etc/web420.yml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/web420.yml", path)

	path, err = findConfigFilePath("")
	require.NoError(t, err)
	assert.Empty(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(home, defaultConfigFileName), []byte("api:\n  port: 8080\n"), 0600))
	path, err = findConfigFilePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, defaultConfigFileName), path)
}

func TestSeedTeam(t *testing.T) {
	seeded := seedTeam()
	assert.Equal(t, "Wildcats", seeded.Name)
	assert.Equal(t, "Cat", seeded.Mascot)
	require.Len(t, seeded.Players, 1)
	assert.Equal(t, "Sam", seeded.Players[0].FirstName)
	assert.Equal(t, 50000.0, utility.FromFloat64Ptr(seeded.Players[0].Salary))
}

func TestCommandTree(t *testing.T) {
	names := func(cmds []cli.Command) []string {
		out := []string{}
		for _, c := range cmds {
			out = append(out, c.Name)
		}
		return out
	}

	assert.Equal(t, []string{"web"}, names(Service().Subcommands))
	assert.Equal(t, []string{"ping", "seed", "list"}, names(Admin().Subcommands))
	assert.Equal(t, []string{"status", "players"}, names(Client().Subcommands))
	assert.Equal(t, "version", Version().Name)

	for _, flags := range [][]cli.Flag{startWebService().Flags, adminPing().Flags, adminSeed().Flags} {
		require.Len(t, flags, 1)
		assert.Equal(t, "conf, config, c", flags[0].GetName())
	}
}

func TestPrintTables(t *testing.T) {
	seeded := seedTeam()
	seeded.Id = primitive.NewObjectID()

	var buf bytes.Buffer
	printTeams(&buf, []team.Team{seeded})
	out := buf.String()
	assert.Contains(t, out, "1 teams:")
	assert.Contains(t, out, "Mascot")
	assert.Contains(t, out, seeded.Id.Hex())
	assert.Contains(t, out, "Wildcats")

	buf.Reset()
	printComposers(&buf, []composer.Composer{{Id: primitive.NewObjectID(), FirstName: "Johann", LastName: "Bach"}})
	assert.Contains(t, buf.String(), "Bach")

	buf.Reset()
	printCustomers(&buf, nil)
	assert.Contains(t, buf.String(), "0 customers:")

	for _, name := range listerNames() {
		assert.Contains(t, listers, name)
	}
	assert.Len(t, listers, len(listerNames()))
}

func TestClientCommands(t *testing.T) {
	server, err := resttestutil.NewTestServerFromConnector(data.NewMockConnector())
	require.NoError(t, err)
	defer server.Close()

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String(urlFlagName, "", "")
	set.String(teamIdFlagName, "", "")
	require.NoError(t, set.Parse([]string{"--" + urlFlagName, server.URL}))
	c := cli.NewContext(nil, set, nil)

	assert.Error(t, clientPlayers().Before(c), "team id is required")

	var status *model.APIStatus
	require.NoError(t, withCommunicator(c, func(ctx context.Context, comm client.Communicator) error {
		status, err = comm.GetStatus(ctx)
		return err
	}))
	assert.True(t, status.DatabaseOK)

	var buf bytes.Buffer
	printStatus(&buf, status)
	assert.Contains(t, buf.String(), "ok")

	buf.Reset()
	printStatus(&buf, &model.APIStatus{DatabaseError: utility.ToStringPtr("connection refused")})
	assert.Contains(t, buf.String(), "connection refused")

	buf.Reset()
	printPlayers(&buf, []model.APIPlayer{{
		FirstName: utility.ToStringPtr("Sam"),
		LastName:  utility.ToStringPtr("Lee"),
		Salary:    utility.ToFloat64Ptr(50000),
	}})
	assert.Contains(t, buf.String(), "1 players:")
	assert.Contains(t, buf.String(), "50,000")
}

func TestWithThreshold(t *testing.T) {
	sender := send.MakeInternalLogger()
	require.NoError(t, withThreshold(sender, level.Warning))
	assert.Equal(t, level.Warning, sender.Level().Threshold)

	sender.Send(message.NewDefaultMessage(level.Info, "hidden"))
	assert.False(t, sender.HasMessage())

	sender.Send(message.NewDefaultMessage(level.Error, "shown"))
	require.True(t, sender.HasMessage())
	assert.Equal(t, "shown", sender.GetMessage().Message.String())
}
