package openapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/oasmock/pkg/schema"
)

func loadPetstore(t *testing.T) *Document {
	t.Helper()
	doc, err := Load(context.Background(), filepath.Join("testdata", "petstore.yaml"))
	require.NoError(t, err)
	return doc
}

func TestLoad_Model(t *testing.T) {
	doc := loadPetstore(t)

	assert.Equal(t, "Petstore", doc.Title)
	assert.Equal(t, "1.2.0", doc.Version)
	assert.True(t, filepath.IsAbs(doc.BaseDir))
	assert.NotNil(t, doc.Spec())

	var ops []string
	for _, op := range doc.Operations {
		ops = append(ops, op.Method+" "+op.Path+" "+op.ID)
	}
	assert.Equal(t, []string{
		"GET /pets listPets",
		"POST /pets createPet",
		"GET /pets/{id} getPet",
		"DELETE /pets/{id} deletePet",
	}, ops)

	list, ok := doc.Operation("get", "/pets")
	require.True(t, ok)
	require.Len(t, list.Responses, 2)
	assert.Equal(t, "200", list.Responses[0].Status)
	assert.Equal(t, "default", list.Responses[1].Status)
	assert.Equal(t, "Error", list.Responses[1].Description, "response $ref resolved")

	ok200 := list.Responses[0]
	require.Len(t, ok200.Headers, 2)
	assert.Equal(t, "X-Total-Count", ok200.Headers[0].Name)
	assert.True(t, ok200.Headers[0].Node.HasExample)
	assert.Equal(t, "number", ok200.Headers[1].Node.Schema.Type, "header $ref resolved")

	require.Len(t, ok200.Content, 1)
	body := ok200.Content[0].Node
	assert.Equal(t, schema.KindResponse, body.Kind)
	assert.Equal(t, "array", body.Schema.Type)
	assert.Equal(t, "#/components/schemas/Pet", body.Schema.Items.Path)
}

func TestLoad_NamedExamplesOrder(t *testing.T) {
	doc := loadPetstore(t)
	create, ok := doc.Operation("POST", "/pets")
	require.True(t, ok)

	mt := create.SelectResponse("").SelectContent("")
	require.NotNil(t, mt)
	assert.Equal(t, []string{"rex", "tom"}, mt.Node.ExampleNames())

	rex, _ := mt.Node.Examples.Get("rex")
	assert.Equal(t, map[string]any{"id": 1, "name": "Rex"}, rex.Value)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	_, err := Load(context.Background(), write("swagger.yaml", "swagger: '2.0'\ninfo: {title: x, version: '1'}\npaths: {}\n"))
	assert.ErrorIs(t, err, ErrInvalidDocument)

	_, err = Load(context.Background(), write("broken.yaml", "openapi: 3.0.0\ninfo: [\n"))
	assert.ErrorIs(t, err, ErrInvalidDocument)

	noInfo := write("noinfo.yaml", "openapi: 3.0.0\npaths: {}\n")
	_, err = Load(context.Background(), noInfo)
	assert.ErrorIs(t, err, ErrInvalidDocument, "validation rejects a missing info object")

	_, err = Load(context.Background(), noInfo, WithValidation(false))
	assert.NoError(t, err)

	_, err = Load(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_CyclicResponseIsIsolated(t *testing.T) {
	doc, err := LoadData(context.Background(), []byte(`
openapi: 3.0.0
info: {title: cyclic, version: "1"}
paths:
  /tree:
    get:
      responses:
        "200":
          description: tree
          content:
            application/json:
              schema: {$ref: "#/components/schemas/Node"}
  /ok:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema: {type: string}
components:
  schemas:
    Node:
      type: object
      properties:
        children:
          type: array
          items: {$ref: "#/components/schemas/Node"}
`), t.TempDir(), WithValidation(false))
	require.NoError(t, err)

	tree, _ := doc.Operation("GET", "/tree")
	assert.ErrorIs(t, tree.Responses[0].Err, schema.ErrCyclicRef)

	ok, _ := doc.Operation("GET", "/ok")
	assert.NoError(t, ok.Responses[0].Err)
}

func TestLoad_HTTP(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "petstore.yaml"))
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	doc, err := Load(context.Background(), srv.URL+"/specs/petstore.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Petstore", doc.Title)
	assert.Equal(t, srv.URL+"/specs", doc.BaseDir)
}

// =============================================================================
// Routing
// =============================================================================

func TestFind(t *testing.T) {
	doc := loadPetstore(t)

	tests := []struct {
		method, target string
		wantOp         string
		wantErr        error
	}{
		{"GET", "/pets", "listPets", nil},
		{"GET", "/api/v1/pets", "listPets", nil},
		{"POST", "/pets", "createPet", nil},
		{"GET", "/pets/42", "getPet", nil},
		{"DELETE", "/api/v1/pets/42", "deletePet", nil},
		{"GET", "/owners", "", ErrPathNotFound},
		{"PATCH", "/pets", "", ErrMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			route, err := doc.Find(httptest.NewRequest(tt.method, tt.target, nil))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOp, route.Operation.ID)
		})
	}
}

func TestFind_PathParams(t *testing.T) {
	doc := loadPetstore(t)
	route, err := doc.FindPath("get", "pets/7")
	require.NoError(t, err)
	assert.Equal(t, "getPet", route.Operation.ID)
	assert.Equal(t, "7", route.PathParams["id"])
}

func TestValidateRequest(t *testing.T) {
	doc := loadPetstore(t)

	check := func(method, target, body string) error {
		var r *http.Request
		if body == "" {
			r = httptest.NewRequest(method, target, nil)
		} else {
			r = httptest.NewRequest(method, target, strings.NewReader(body))
			r.Header.Set("Content-Type", "application/json")
		}
		route, err := doc.Find(r)
		require.NoError(t, err)
		return doc.ValidateRequest(r, route)
	}

	assert.NoError(t, check("GET", "/pets?limit=10", ""))
	assert.Error(t, check("GET", "/pets?limit=500", ""))
	assert.Error(t, check("GET", "/pets/abc", ""))
	assert.NoError(t, check("POST", "/pets", `{"id": 1, "name": "Rex"}`))
	assert.Error(t, check("POST", "/pets", `{"id": "x"}`))
	assert.Error(t, check("POST", "/pets", ""), "required body")
}

func TestValidateRequest_BodyRestored(t *testing.T) {
	doc := loadPetstore(t)
	r := httptest.NewRequest("POST", "/pets", strings.NewReader(`{"id": 1, "name": "Rex"}`))
	r.Header.Set("Content-Type", "application/json")
	route, err := doc.Find(r)
	require.NoError(t, err)
	require.NoError(t, doc.ValidateRequest(r, route))

	buf := new(strings.Builder)
	_, err = io.Copy(buf, r.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"id": 1, "name": "Rex"}`, buf.String())
}

// =============================================================================
// Selection
// =============================================================================

func TestSelectResponse(t *testing.T) {
	op := &Operation{Responses: []*Response{
		{Status: "404"}, {Status: "default"}, {Status: "201"}, {Status: "200"},
	}}
	assert.Equal(t, "201", op.SelectResponse("").Status, "first 2XX in declared order")
	assert.Equal(t, "404", op.SelectResponse("404").Status)
	assert.Equal(t, "201", op.SelectResponse("500").Status, "unknown preference is ignored")

	op = &Operation{Responses: []*Response{{Status: "404"}, {Status: "default"}}}
	assert.Equal(t, "default", op.SelectResponse("").Status)

	op = &Operation{Responses: []*Response{{Status: "404"}, {Status: "500"}}}
	assert.Equal(t, "404", op.SelectResponse("").Status)

	op = &Operation{Responses: []*Response{{Status: "4XX"}, {Status: "2xx"}}}
	assert.Equal(t, "2xx", op.SelectResponse("").Status)

	assert.Nil(t, (&Operation{}).SelectResponse(""))
}

func TestStatusCode(t *testing.T) {
	for status, want := range map[string]int{
		"200": 200, "204": 204, "404": 404, "2XX": 200, "4xx": 400, "default": 200, "999": 200,
	} {
		assert.Equal(t, want, (&Response{Status: status}).StatusCode(), status)
	}
}

func TestSelectContent(t *testing.T) {
	r := &Response{Content: []*MediaType{
		{Type: "text/plain"}, {Type: "application/vnd.pet+json"}, {Type: "application/json; charset=utf-8"},
	}}
	assert.Equal(t, "application/json; charset=utf-8", r.SelectContent("").Type)
	assert.Equal(t, "text/plain", r.SelectContent("text/plain, */*").Type)
	assert.Equal(t, "application/json; charset=utf-8", r.SelectContent("*/*").Type)

	r = &Response{Content: []*MediaType{{Type: "text/plain"}, {Type: "application/vnd.pet+json"}}}
	assert.Equal(t, "application/vnd.pet+json", r.SelectContent("").Type)

	r = &Response{Content: []*MediaType{{Type: "text/plain"}, {Type: "text/csv"}}}
	assert.Equal(t, "text/plain", r.SelectContent("").Type)

	assert.Nil(t, (&Response{}).SelectContent(""))
}

func TestFindErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrPathNotFound, ErrMethodNotAllowed))
}
