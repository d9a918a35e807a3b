package application_test

import (
	"testing"

	"github.com/specgate/specgate/internal/adapters/outbound/config"
	"github.com/specgate/specgate/internal/adapters/outbound/parser"
	"github.com/specgate/specgate/internal/adapters/outbound/scanner"
	"github.com/specgate/specgate/internal/application"
	"github.com/specgate/specgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCoverageService() *application.CoverageService {
	return application.NewCoverageService(
		scanner.New(),
		parser.New(),
		config.New(),
		nil,
	)
}

func TestCoverage_RoutesFoundAcrossFrameworks(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"app/routes.py": "@app.post(\"/products\")\ndef create_product():\n    return service.create()\n\n" +
			"@app.get(\"/products/{product_id}\")\ndef get_product(product_id):\n    return service.get(product_id)\n",
		"src/cart.js": "router.post('/carts/:cart_id/items', addItem);\n",
	})

	surface := &domain.APISurface{Endpoints: []domain.EndpointDecl{
		{Method: "POST", Path: "/products"},
		{Method: "GET", Path: "/products/{id}"},
		{Method: "POST", Path: "/carts/{id}/items"},
		{Method: "DELETE", Path: "/products/{product_id}"},
	}}

	result, err := newCoverageService().Validate(dir, surface)
	require.NoError(t, err)

	assert.InDelta(t, 0.75, result.CoverageRate, 1e-9)
	require.Len(t, result.Missing, 1)
	assert.Equal(t, "DELETE", result.Missing[0].Method)
	assert.Empty(t, result.Extra)
}

func TestCoverage_ExtraRoutesReported(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"app/routes.py": "@app.get(\"/internal/debug\")\ndef debug():\n    return state()\n",
	})

	result, err := newCoverageService().Validate(dir, &domain.APISurface{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.CoverageRate)
	assert.Equal(t, []string{"GET /internal/debug"}, result.Extra)
}
