// Package shell is the interactive menu over stdin/stdout. It drives the
// inventory service and exporter through their contracts and owns nothing
// but prompt/retry plumbing.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"store-inventory/internal/models"
	"store-inventory/internal/normalize"
	"store-inventory/internal/service"
	"store-inventory/internal/store"
)

const menu = `
Menu:
  V) View a single product's inventory
  A) Add a new product to the database
  B) Backup inventory to file
  Q) Quit
`

// Inventory is the service surface the shell drives.
type Inventory interface {
	Submit(ctx context.Context, name string, price int64, quantity int) (service.UpsertResult, error)
	View(ctx context.Context, id int64) (*models.Product, error)
}

// Backup writes the inventory to a CSV file.
type Backup interface {
	ExportCSV(ctx context.Context, path string, appendMode bool) (int, error)
}

// Shell reads menu selections from in and writes prompts and results to out.
type Shell struct {
	inventory  Inventory
	backup     Backup
	backupPath string
	in         *bufio.Scanner
	out        io.Writer
}

// New creates a shell over the given reader and writer.
func New(inventory Inventory, backup Backup, backupPath string, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		inventory:  inventory,
		backup:     backup,
		backupPath: backupPath,
		in:         bufio.NewScanner(in),
		out:        out,
	}
}

// Run loops on the menu until the user quits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	for {
		fmt.Fprint(s.out, menu, "\nPlease enter an option: ")
		line, ok := s.readLine()
		if !ok {
			return nil
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "v":
			if err := s.viewProduct(ctx); err != nil {
				return err
			}
		case "a":
			if err := s.addProduct(ctx); err != nil {
				return err
			}
		case "b":
			if err := s.runBackup(ctx); err != nil {
				return err
			}
		case "q":
			return nil
		default:
			fmt.Fprintln(s.out, "Error: please enter a single letter for the menu option you wish to select.")
		}
	}
}

// viewProduct prompts for an id until one resolves, or the user submits a
// blank line to go back. Unknown ids re-prompt; the store is never touched.
func (s *Shell) viewProduct(ctx context.Context) error {
	for {
		fmt.Fprint(s.out, "Enter the id of the product you wish to view (blank to cancel): ")
		line, ok := s.readLine()
		if !ok || strings.TrimSpace(line) == "" {
			return nil
		}
		id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			fmt.Fprintln(s.out, "Error: product id must be a number. Please try again.")
			continue
		}
		p, err := s.inventory.View(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintln(s.out, "Error: invalid product id. Please try again.")
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "\nProduct name: %s\nPrice: %s\nQuantity: %d\nDate updated: %s\n\n",
			p.Name, normalize.FormatPrice(p.Price), p.Quantity, normalize.FormatDateISO(p.UpdatedAt))
		return nil
	}
}

func (s *Shell) addProduct(ctx context.Context) error {
	fmt.Fprint(s.out, "Please enter the name of the new product (blank to cancel): ")
	name, ok := s.readLine()
	if !ok {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	var price int64
	var quantity int
	for {
		fmt.Fprint(s.out, "Please enter the price in cents with no currency symbol: ")
		priceLine, ok := s.readLine()
		if !ok {
			return nil
		}
		fmt.Fprint(s.out, "Please enter the quantity: ")
		quantityLine, ok := s.readLine()
		if !ok {
			return nil
		}

		var err error
		price, err = strconv.ParseInt(strings.TrimSpace(priceLine), 10, 64)
		if err == nil {
			quantity, err = strconv.Atoi(strings.TrimSpace(quantityLine))
		}
		if err != nil {
			fmt.Fprintln(s.out, "Error: invalid price or quantity. Please try again.")
			continue
		}
		break
	}

	result, err := s.inventory.Submit(ctx, name, price, quantity)
	if err != nil {
		return err
	}
	switch result {
	case service.Inserted:
		fmt.Fprintln(s.out, "Product added successfully.")
	case service.UpdatedDuplicate:
		fmt.Fprintln(s.out, "Duplicate item found, item updated successfully.")
	case service.RejectedStale:
		fmt.Fprintf(s.out, "The product %q already exists with a newer date.\n", name)
	}
	return nil
}

func (s *Shell) runBackup(ctx context.Context) error {
	n, err := s.backup.ExportCSV(ctx, s.backupPath, true)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Backed up %d products to %s.\n", n, s.backupPath)
	return nil
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}
