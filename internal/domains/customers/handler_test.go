package customers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	listCustomersSQL = regexp.QuoteMeta("SELECT id, name, mobile FROM customers ORDER BY id")
	getCustomerSQL   = regexp.QuoteMeta("SELECT id, name, mobile FROM customers WHERE id = $1")
	listEntriesSQL   = regexp.QuoteMeta("FROM milk_entries WHERE customer_id = $1 ORDER BY date DESC, entry_id DESC")
	insertSQL        = regexp.QuoteMeta("INSERT INTO customers (id, name, mobile) VALUES ($1, $2, $3)")
	deleteSQL        = regexp.QuoteMeta("DELETE FROM customers WHERE id = $1")
)

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r := chi.NewRouter()
	r.Route("/api/customers", NewHandler(db).RegisterCustomerRoutes)
	return r, mock
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandleListCustomers(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(listCustomersSQL).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "mobile"}).
			AddRow("101", "Ramesh", "9876543210").
			AddRow("102", "Sita", "9123456780"),
	)

	rr := serve(router, http.MethodGet, "/api/customers", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[
		{"id":"101","name":"Ramesh","mobile":"9876543210"},
		{"id":"102","name":"Sita","mobile":"9123456780"}
	]`, rr.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleListCustomers_Empty(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(listCustomersSQL).WillReturnRows(sqlmock.NewRows([]string{"id", "name", "mobile"}))

	rr := serve(router, http.MethodGet, "/api/customers", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestHandleListCustomers_StoreUnavailable(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(listCustomersSQL).WillReturnError(errors.New("dial tcp: connection refused"))

	rr := serve(router, http.MethodGet, "/api/customers", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch customers from database."}`, rr.Body.String())
}

func TestHandleGetCustomer(t *testing.T) {
	router, mock := newTestRouter(t)
	newest := time.Date(2024, 5, 3, 6, 0, 0, 0, time.UTC)
	older := newest.Add(-24 * time.Hour)

	mock.ExpectQuery(getCustomerSQL).WithArgs("201").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "mobile"}).AddRow("201", "Test", "9999999999"),
	)
	mock.ExpectQuery(listEntriesSQL).WithArgs("201").WillReturnRows(
		sqlmock.NewRows([]string{"entry_id", "customer_id", "date", "liters", "fat", "amount"}).
			AddRow(int64(2), "201", newest, 10.0, 4.0, 34.0).
			AddRow(int64(1), "201", older, 5.0, 3.5, 14.88),
	)

	rr := serve(router, http.MethodGet, "/api/customers/201", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var detail CustomerDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	assert.Equal(t, "201", detail.ID)
	assert.Equal(t, "Test", detail.Name)
	require.Len(t, detail.Entries, 2)
	assert.Equal(t, int64(2), detail.Entries[0].EntryID)
	assert.True(t, detail.Entries[0].Date.After(detail.Entries[1].Date))
	assert.Equal(t, 34.0, detail.Entries[0].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleGetCustomer_NoEntriesIsEmptyArray(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(getCustomerSQL).WithArgs("201").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "mobile"}).AddRow("201", "Test", "9999999999"),
	)
	mock.ExpectQuery(listEntriesSQL).WithArgs("201").WillReturnRows(
		sqlmock.NewRows([]string{"entry_id", "customer_id", "date", "liters", "fat", "amount"}),
	)

	rr := serve(router, http.MethodGet, "/api/customers/201", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":"201","name":"Test","mobile":"9999999999","entries":[]}`, rr.Body.String())
}

func TestHandleGetCustomer_NotFound(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(getCustomerSQL).WithArgs("404").WillReturnRows(sqlmock.NewRows([]string{"id", "name", "mobile"}))

	rr := serve(router, http.MethodGet, "/api/customers/404", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Customer not found"}`, rr.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleCreateCustomer(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectExec(insertSQL).WithArgs("201", "Test", "9999999999").WillReturnResult(sqlmock.NewResult(0, 1))

	rr := serve(router, http.MethodPost, "/api/customers", `{"id":"201","name":"Test","mobile":"9999999999"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"message":"Customer added successfully."}`, rr.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleCreateCustomer_NumericID(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectExec(insertSQL).WithArgs("305", "Meena", "9000000000").WillReturnResult(sqlmock.NewResult(0, 1))

	rr := serve(router, http.MethodPost, "/api/customers", `{"id":305,"name":"Meena","mobile":"9000000000"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleCreateCustomer_Validation(t *testing.T) {
	tests := []struct {
		description  string
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			description:  "missing mobile",
			body:         `{"id":"201","name":"Test"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"ID, Name, and Mobile are all required."}`,
		},
		{
			description:  "empty name",
			body:         `{"id":"201","name":"","mobile":"9999999999"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"ID, Name, and Mobile are all required."}`,
		},
	}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			router, mock := newTestRouter(t)

			rr := serve(router, http.MethodPost, "/api/customers", test.body)

			assert.Equal(t, test.expectedCode, rr.Code)
			assert.JSONEq(t, test.expectedBody, rr.Body.String())
			assert.NoError(t, mock.ExpectationsWereMet(), "no statement may run for an invalid request")
		})
	}
}

func TestHandleCreateCustomer_MalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := serve(router, http.MethodPost, "/api/customers", `{"id":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleCreateCustomer_DuplicateID(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectExec(insertSQL).WithArgs("201", "Other", "1111111111").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "customers_pkey"})

	rr := serve(router, http.MethodPost, "/api/customers", `{"id":"201","name":"Other","mobile":"1111111111"}`)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"error":"This ID already exists."}`, rr.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleDeleteCustomer(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectExec(deleteSQL).WithArgs("201").WillReturnResult(sqlmock.NewResult(0, 1))

	rr := serve(router, http.MethodDelete, "/api/customers/201", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Customer deleted successfully."}`, rr.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleDeleteCustomer_NotFound(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectExec(deleteSQL).WithArgs("999").WillReturnResult(sqlmock.NewResult(0, 0))

	rr := serve(router, http.MethodDelete, "/api/customers/999", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Customer to delete was not found."}`, rr.Body.String())
}

func TestHandleCustomerID_PercentEncodedIDs(t *testing.T) {
	tests := []struct {
		name   string
		target string
		id     string
	}{
		{name: "literal percent sequence", target: "/api/customers/a%2541", id: "a%41"},
		{name: "encoded slash", target: "/api/customers/A%2F7", id: "A/7"},
		{name: "encoded space", target: "/api/customers/A%209", id: "A 9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mock := newTestRouter(t)

			mock.ExpectQuery(getCustomerSQL).WithArgs(tt.id).WillReturnRows(
				sqlmock.NewRows([]string{"id", "name", "mobile"}).AddRow(tt.id, "Test", "1"),
			)
			mock.ExpectQuery(listEntriesSQL).WithArgs(tt.id).WillReturnRows(
				sqlmock.NewRows([]string{"entry_id", "customer_id", "date", "liters", "fat", "amount"}),
			)
			mock.ExpectExec(deleteSQL).WithArgs(tt.id).WillReturnResult(sqlmock.NewResult(0, 1))

			rr := serve(router, http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusOK, rr.Code)

			rr = serve(router, http.MethodDelete, tt.target, "")
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
