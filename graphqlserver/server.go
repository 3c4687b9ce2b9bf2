package graphqlserver

import (
	"context"
	"encoding/json"
	"log"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"qcube.GO/graphql"
	gqlmodels "qcube.GO/graphql/models"
	"qcube.GO/graphql/registry"
	"qcube.GO/graphql/resolvers"
	"qcube.GO/service/warehouse"
)

// RootResolver is the root for graphql-go, reading from the warehouse.
type RootResolver struct {
	W *warehouse.Warehouse
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{w: r.W}
}

// QueryResolver implements the Query fields.
type QueryResolver struct {
	w *warehouse.Warehouse
}

// SkusArgs matches the skus query arguments.
type SkusArgs struct {
	Filtro *string
}

func (r *QueryResolver) Skus(ctx context.Context, args SkusArgs) ([]*gqlmodels.SKU, error) {
	raw := ""
	if args.Filtro != nil {
		raw = *args.Filtro
	}
	filter, err := resolvers.DecodeSKUFilter(raw)
	if err != nil {
		return nil, err
	}
	return gqlmodels.FromSKUs(filter.Apply(r.w.SKUs("", false))), nil
}

// BuscarSkusArgs matches the buscarSkus query arguments.
type BuscarSkusArgs struct {
	Query string
}

func (r *QueryResolver) BuscarSkus(ctx context.Context, args BuscarSkusArgs) ([]*gqlmodels.SKU, error) {
	svc := resolvers.GetSearchService()
	if svc.Enabled() {
		codes, err := svc.Search(ctx, args.Query)
		if err == nil {
			out := make([]*gqlmodels.SKU, 0, len(codes))
			for _, code := range codes {
				if s, ok := r.w.SKU(code); ok {
					out = append(out, gqlmodels.FromSKU(*s))
				}
			}
			return out, nil
		}
		log.Printf("graphql: elasticsearch search failed, falling back: %v", err)
	}
	return gqlmodels.FromSKUs(r.w.SKUs(args.Query, false)), nil
}

// OrdenArgs matches the orden query arguments.
type OrdenArgs struct {
	ID string
}

func (r *QueryResolver) Orden(ctx context.Context, args OrdenArgs) (*gqlmodels.Orden, error) {
	o, err := r.w.Order(args.ID)
	if err != nil {
		return nil, nil // nullable: unknown id yields null, not an error
	}
	return gqlmodels.FromOrder(*o), nil
}

// OrdenesArgs matches the ordenes query arguments.
type OrdenesArgs struct {
	Estado *string
}

func (r *QueryResolver) Ordenes(ctx context.Context, args OrdenesArgs) ([]*gqlmodels.Orden, error) {
	estado := ""
	if args.Estado != nil {
		estado = *args.Estado
	}
	return gqlmodels.FromOrders(r.w.Orders(estado)), nil
}

// MovimientosArgs matches the movimientos query arguments.
type MovimientosArgs struct {
	Sku *string
}

func (r *QueryResolver) Movimientos(ctx context.Context, args MovimientosArgs) ([]*gqlmodels.Movimiento, error) {
	sku := ""
	if args.Sku != nil {
		sku = *args.Sku
	}
	return gqlmodels.FromMovements(r.w.Movements(sku)), nil
}

func (r *QueryResolver) Clientes(ctx context.Context) ([]*gqlmodels.Cliente, error) {
	return gqlmodels.FromCustomers(r.w.Customers()), nil
}

// ExtensionArgs for extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(w *warehouse.Warehouse) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{W: w}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
