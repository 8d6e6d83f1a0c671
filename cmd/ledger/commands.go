package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/ledger"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/types"
)

var errUnknownCommand = errors.New("Unknown command")

type commandArgs struct {
	cmd            string
	description    string
	amount         string
	trxType        string
	category       string
	date           string
	id             int64
	filterType     string
	filterCategory string
	api            string
}

func (args commandArgs) newTransaction(now time.Time) (ledger.NewTransaction, error) {
	description := strings.TrimSpace(args.description)
	if description == "" {
		return ledger.NewTransaction{}, errors.New("Description is required")
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(args.amount))
	if err != nil {
		return ledger.NewTransaction{}, errors.Wrapf(err, "Invalid amount %q", args.amount)
	}
	if amount.Sign() < 0 {
		return ledger.NewTransaction{}, errors.New("Amount must not be negative")
	}
	trxType, err := ledger.ParseTransactionType(args.trxType)
	if err != nil {
		return ledger.NewTransaction{}, err
	}
	if !ledger.IsValidCategory(trxType, args.category) {
		return ledger.NewTransaction{}, errors.Errorf("Category %q is not valid for %v", args.category, trxType)
	}
	date := types.DateOf(now)
	if args.date != "" {
		if date, err = types.ParseDate(args.date); err != nil {
			return ledger.NewTransaction{}, err
		}
	}
	return ledger.NewTransaction{
		Description: description,
		Amount:      amount,
		Type:        trxType,
		Category:    args.category,
		Date:        date,
	}, nil
}

func printTransactions(out io.Writer, transactions []ledger.Transaction) {
	if len(transactions) == 0 {
		fmt.Fprintln(out, "No transactions found")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION\tCATEGORY\tAMOUNT")
	for _, trx := range transactions {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n",
			trx.ID, trx.Date.Format(), trx.Description, trx.Category, ledger.FormatSignedAmount(trx))
	}
	w.Flush()
}

func printSummary(out io.Writer, summary ledger.Summary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Balance:\t%v\n", ledger.FormatCurrency(summary.Balance))
	fmt.Fprintf(w, "Income:\t%v\n", ledger.FormatCurrency(summary.TotalIncome))
	fmt.Fprintf(w, "Expenses:\t%v\n", ledger.FormatCurrency(summary.TotalExpense))
	w.Flush()
}

func runCommand(ctx context.Context, args commandArgs, b backend, out io.Writer, now func() time.Time) error {
	switch args.cmd {
	case "add":
		newTrx, err := args.newTransaction(now())
		if err != nil {
			return err
		}
		trx, err := b.add(ctx, newTrx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Transaction %v added\n", trx.ID)
	case "delete":
		if args.id == 0 {
			return errors.New("Transaction id is required")
		}
		if err := b.delete(ctx, args.id); err != nil {
			return err
		}
		fmt.Fprintf(out, "Transaction %v deleted\n", args.id)
	case "list":
		transactions, err := b.list(ctx, ledger.Filter{Type: args.filterType, Category: args.filterCategory})
		if err != nil {
			return err
		}
		printTransactions(out, transactions)
	case "summary":
		summary, err := b.summary(ctx)
		if err != nil {
			return err
		}
		printSummary(out, summary)
	case "categories":
		var categories []string
		if args.trxType == "" {
			categories = ledger.AllCategories()
		} else {
			var err error
			if categories, err = b.categories(ctx, ledger.TransactionType(args.trxType)); err != nil {
				return err
			}
		}
		for _, category := range categories {
			fmt.Fprintln(out, category)
		}
	default:
		return errUnknownCommand
	}
	return nil
}
