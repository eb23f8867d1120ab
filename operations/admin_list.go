package operations

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cheynewallace/tabby"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"github.com/web420/web420/db"
	"github.com/web420/web420/model/composer"
	"github.com/web420/web420/model/customer"
	"github.com/web420/web420/model/person"
	"github.com/web420/web420/model/team"
)

const resourceFlagName = "resource"

// listers print one stored resource type as a table.
var listers = map[string]func(context.Context, *db.Store, io.Writer) error{
	"teams":     listTeams,
	"composers": listComposers,
	"people":    listPeople,
	"customers": listCustomers,
}

func listerNames() []string {
	return []string{"teams", "composers", "people", "customers"}
}

func adminList() cli.Command {
	return cli.Command{
		Name:  "list",
		Usage: "print the stored documents of one resource type",
		Flags: optionalConfigFlags(cli.StringFlag{
			Name:  joinFlagNames(resourceFlagName, "r"),
			Usage: fmt.Sprintf("resource to list (%s)", strings.Join(listerNames(), ", ")),
			Value: "teams",
		}),
		Before: requireFileExistsIfSet(confFlagName),
		Action: func(c *cli.Context) error {
			list, ok := listers[c.String(resourceFlagName)]
			if !ok {
				return errors.Errorf("unknown resource '%s'", c.String(resourceFlagName))
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			env, err := environmentFromFlags(ctx, c)
			if err != nil {
				return err
			}
			defer func() { _ = env.Close(ctx) }()

			return list(ctx, env.Store(), os.Stdout)
		},
	}
}

func newTable(w io.Writer) *tabby.Tabby {
	return tabby.NewCustom(tabwriter.NewWriter(w, 0, 0, 2, ' ', 0))
}

func listTeams(ctx context.Context, store *db.Store, w io.Writer) error {
	teams, err := team.FindAll(ctx, store, team.All())
	if err != nil {
		return errors.WithStack(err)
	}
	printTeams(w, teams)
	return nil
}

func printTeams(w io.Writer, teams []team.Team) {
	t := newTable(w)
	t.AddHeader("Id", "Name", "Mascot", "Players")
	for _, tm := range teams {
		t.AddLine(tm.Id.Hex(), tm.Name, tm.Mascot, len(tm.Players))
	}
	fmt.Fprintf(w, "%d teams:\n", len(teams))
	t.Print()
}

func listComposers(ctx context.Context, store *db.Store, w io.Writer) error {
	composers, err := composer.FindAll(ctx, store, composer.All())
	if err != nil {
		return errors.WithStack(err)
	}
	printComposers(w, composers)
	return nil
}

func printComposers(w io.Writer, composers []composer.Composer) {
	t := newTable(w)
	t.AddHeader("Id", "First Name", "Last Name", "Catalog Number")
	for _, c := range composers {
		number := ""
		if c.CatalogNumber != nil {
			number = strconv.Itoa(*c.CatalogNumber)
		}
		t.AddLine(c.Id.Hex(), c.FirstName, c.LastName, number)
	}
	fmt.Fprintf(w, "%d composers:\n", len(composers))
	t.Print()
}

func listPeople(ctx context.Context, store *db.Store, w io.Writer) error {
	people, err := person.FindAll(ctx, store, person.All())
	if err != nil {
		return errors.WithStack(err)
	}
	printPeople(w, people)
	return nil
}

func printPeople(w io.Writer, people []person.Person) {
	t := newTable(w)
	t.AddHeader("Id", "First Name", "Last Name", "Roles", "Dependents")
	for _, p := range people {
		t.AddLine(p.Id.Hex(), p.FirstName, p.LastName, len(p.Roles), len(p.Dependents))
	}
	fmt.Fprintf(w, "%d people:\n", len(people))
	t.Print()
}

func listCustomers(ctx context.Context, store *db.Store, w io.Writer) error {
	customers, err := customer.FindAll(ctx, store, customer.All())
	if err != nil {
		return errors.WithStack(err)
	}
	printCustomers(w, customers)
	return nil
}

func printCustomers(w io.Writer, customers []customer.Customer) {
	t := newTable(w)
	t.AddHeader("Id", "User Name", "First Name", "Last Name", "Invoices")
	for _, c := range customers {
		t.AddLine(c.Id.Hex(), c.UserName, c.FirstName, c.LastName, len(c.Invoices))
	}
	fmt.Fprintf(w, "%d customers:\n", len(customers))
	t.Print()
}
