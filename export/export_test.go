package export_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/crudkit-go/crudkit/export"
	"github.com/crudkit-go/crudkit/repogen/repotest"
)

type order struct {
	ID     int
	Number string
	Amount float64
}

type orderFilter struct {
	MinAmount float64
}

func newOrderRepo() *repotest.MemRepo[order, orderFilter] {
	return repotest.NewMemRepo(
		func(o order) any { return o.ID },
		func(o order, f orderFilter) bool { return o.Amount >= f.MinAmount },
	)
}

func orderCells(o order) []any {
	return []any{o.ID, o.Number, o.Amount}
}

var orderHeaders = []string{"ID", "Number", "Amount"}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	rows := [][]any{
		{1, "ORD-1", 10.5},
		{2, `say "hi"`, 0},
	}

	got := export.WriteCSV(rows, []string{"ID", "Name", "Amount"})

	want := "\"ID\",\"Name\",\"Amount\"\n" +
		"\"1\",\"ORD-1\",\"10.5\"\n" +
		"\"2\",\"say \"hi\"\",\"0\"\n"
	assert.Equal(t, want, string(got))
}

func TestWriteCSV_NoRows(t *testing.T) {
	t.Parallel()

	got := export.WriteCSV(nil, []string{"ID"})

	assert.Equal(t, "\"ID\"\n", string(got))
}

func TestCSVHandler(t *testing.T) {
	t.Parallel()

	repo := newOrderRepo()
	repo.Seed(
		order{ID: 1, Number: "ORD-1", Amount: 50},
		order{ID: 2, Number: "ORD-2", Amount: 5},
		order{ID: 3, Number: "ORD-3", Amount: 120},
	)

	handler := &export.CSVHandler[order, orderFilter, struct{ Min float64 }]{
		Repo: repo,
		Filter: func(q *struct{ Min float64 }) *orderFilter {
			return &orderFilter{MinAmount: q.Min}
		},
		Selector: orderCells,
		Headers:  orderHeaders,
	}

	file, err := handler.Execute(context.Background(), &struct{ Min float64 }{Min: 10})

	require.NoError(t, err)
	want := "\"ID\",\"Number\",\"Amount\"\n" +
		"\"1\",\"ORD-1\",\"50\"\n" +
		"\"3\",\"ORD-3\",\"120\"\n"
	assert.Equal(t, want, string(file))
}

func TestCSVHandler_NoMatches(t *testing.T) {
	t.Parallel()

	handler := &export.CSVHandler[order, orderFilter, struct{}]{
		Repo:     newOrderRepo(),
		Selector: orderCells,
		Headers:  orderHeaders,
	}

	file, err := handler.Execute(context.Background(), &struct{}{})

	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestCSVHandler_RepoFailure(t *testing.T) {
	t.Parallel()

	repo := newOrderRepo()
	repo.Seed(order{ID: 1, Number: "ORD-1", Amount: 50})
	repo.FailNext(assert.AnError)

	handler := &export.CSVHandler[order, orderFilter, struct{}]{
		Repo:     repo,
		Selector: orderCells,
		Headers:  orderHeaders,
	}

	file, err := handler.Execute(context.Background(), &struct{}{})

	require.Error(t, err)
	assert.Nil(t, file)
}

func TestCSVHandler_SelectorPanic(t *testing.T) {
	t.Parallel()

	repo := newOrderRepo()
	repo.Seed(order{ID: 1, Number: "ORD-1", Amount: 50})

	handler := &export.CSVHandler[order, orderFilter, struct{}]{
		Repo:     repo,
		Selector: func(order) []any { panic("selector blew up") },
		Headers:  orderHeaders,
	}

	file, err := handler.Execute(context.Background(), &struct{}{})

	require.Error(t, err)
	assert.Nil(t, file)
}

func TestExcelHandler(t *testing.T) {
	t.Parallel()

	repo := newOrderRepo()
	repo.Seed(
		order{ID: 1, Number: "ORD-1", Amount: 50},
		order{ID: 2, Number: "ORD-2", Amount: 120},
	)

	handler := &export.ExcelHandler[order, orderFilter, struct{}]{
		Repo:      repo,
		Selector:  orderCells,
		Headers:   orderHeaders,
		SheetName: "Orders",
		Title:     "Order report",
		Summary: func(_ *struct{}, rows []order) [][2]string {
			return [][2]string{{"Total orders", "2"}}
		},
	}

	file, err := handler.Execute(context.Background(), &struct{}{})

	require.NoError(t, err)
	require.NotEmpty(t, file)

	wb, err := excelize.OpenReader(bytes.NewReader(file))
	require.NoError(t, err)
	defer wb.Close() //nolint:errcheck

	assert.Equal(t, []string{"Orders"}, wb.GetSheetList())

	title, err := wb.GetCellValue("Orders", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Order report", title)

	label, err := wb.GetCellValue("Orders", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Total orders", label)

	header, err := wb.GetCellValue("Orders", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Number", header)

	cell, err := wb.GetCellValue("Orders", "B5")
	require.NoError(t, err)
	assert.Equal(t, "ORD-2", cell)
}

func TestExcelHandler_NoMatches(t *testing.T) {
	t.Parallel()

	handler := &export.ExcelHandler[order, orderFilter, struct{}]{
		Repo:     newOrderRepo(),
		Selector: orderCells,
		Headers:  orderHeaders,
	}

	file, err := handler.Execute(context.Background(), &struct{}{})

	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestWriteExcel_MultipleSheets(t *testing.T) {
	t.Parallel()

	file, err := export.WriteExcel([]export.Sheet{
		{SheetName: "First", Headers: []string{"A"}, Rows: [][]any{{"one"}}},
		{SheetName: "Second", Headers: []string{"B"}, Rows: [][]any{{"two"}}},
	})
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(file))
	require.NoError(t, err)
	defer wb.Close() //nolint:errcheck

	assert.Equal(t, []string{"First", "Second"}, wb.GetSheetList())

	cell, err := wb.GetCellValue("Second", "A1")
	require.NoError(t, err)
	assert.Equal(t, "B", cell)
}

func TestWriteExcel_NoHeaders(t *testing.T) {
	t.Parallel()

	_, err := export.WriteExcel([]export.Sheet{{SheetName: "Empty"}})

	assert.Error(t, err)
}
