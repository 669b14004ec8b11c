package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"product-catalog/internal/catalog"
	"product-catalog/internal/model"
)

const usage = `usage: catalog <command> [arguments]

commands:
  status                                   probe the API and print the mode
  list                                     list products
  create -name N -description D -price P   create a product
  delete <id>                              delete a product
  reconnect                                retry the API
  offline                                  list the local data without probing the API
  reset                                    restore the local data to the seed set
`

var errUsage = errors.New("invalid usage")

type app struct {
	controller *catalog.Controller
	out        io.Writer
}

func newApp(controller *catalog.Controller, out io.Writer) *app {
	return &app{controller: controller, out: out}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "status":
		a.controller.Start(ctx)
		a.banner()
		return nil
	case "list":
		a.controller.Start(ctx)
		return a.list(ctx)
	case "create":
		return a.create(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	case "reconnect":
		return a.reconnect(ctx)
	case "offline":
		a.controller.SwitchToLocalMode()
		return a.list(ctx)
	case "reset":
		a.controller.SwitchToLocalMode()
		if err := a.controller.ResetLocalData(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "local data restored")
		return a.list(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (a *app) list(ctx context.Context) error {
	products, err := a.controller.List(ctx)
	if err != nil {
		return err
	}

	a.banner()
	if len(products) == 0 {
		fmt.Fprintln(a.out, "no products")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tCREATED")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\n", p.ID, p.Name, p.Price, p.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(a.out)
	name := fs.String("name", "", "product name")
	description := fs.String("description", "", "product description")
	price := fs.String("price", "", "product price")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	value, err := strconv.ParseFloat(*price, 64)
	if err != nil {
		return model.NewValidationError("price must be a valid number greater than 0")
	}
	if err := model.ValidatePrice(value); err != nil {
		return err
	}

	a.controller.Start(ctx)
	product, err := a.controller.Create(ctx, model.CreateProductRequest{
		Name:        *name,
		Description: *description,
		Price:       value,
	})
	if err != nil {
		return describe(err)
	}

	a.banner()
	fmt.Fprintf(a.out, "created product %d: %s (%.2f)\n", product.ID, product.Name, product.Price)
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete takes exactly one product id", errUsage)
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return model.ErrInvalidID
	}

	a.controller.Start(ctx)
	deleted, err := a.controller.Delete(ctx, id)
	if err != nil {
		return describe(err)
	}

	a.banner()
	fmt.Fprintf(a.out, "deleted product %d: %s\n", deleted.ID, deleted.Name)
	return nil
}

func (a *app) reconnect(ctx context.Context) error {
	if !a.controller.SwitchToAPIMode(ctx) {
		a.banner()
		return errors.New("the API is still unreachable")
	}
	a.banner()
	return nil
}

func (a *app) banner() {
	switch a.controller.Mode() {
	case catalog.ModeAPI:
		fmt.Fprintln(a.out, "[api] connected to the product API")
	case catalog.ModeLocal:
		fmt.Fprintln(a.out, "[local] API unreachable, using local data")
	default:
		fmt.Fprintln(a.out, "[checking] checking the connection")
	}
}

// describe adds the missing fields to validation errors.
func describe(err error) error {
	var de *model.DomainError
	if errors.As(err, &de) && len(de.RequiredFields) > 0 {
		return fmt.Errorf("%w (required: %v)", err, de.RequiredFields)
	}
	return err
}
