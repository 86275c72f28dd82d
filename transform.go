package main

import (
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderRow is one expanded line item: a single (buyer, product, quantity)
// triple tied back to its demand. Transient, rebuilt on every run.
type OrderRow struct {
	Buyer      string
	Product    string
	Quantity   float64
	DemandID   string
	DemandName string
}

// needsReference reports whether any cart still carries bare reference ids
// instead of embedded county and product detail.
func needsReference(carts []Cart) bool {
	for _, cart := range carts {
		if cart.CountyName == "" && cart.CountyID != nil {
			return true
		}
		for _, item := range cart.Products {
			if item.Name == "" && item.ProductID != nil {
				return true
			}
		}
	}
	return false
}

// referenceIndex resolves county and product reference ids. All keys go
// through keyString first, so an ObjectID stored in one collection still
// matches its string form stored in another.
type referenceIndex struct {
	products map[string]Product
	counties map[string]string
}

func buildReferenceIndex(products []Product, counties []County) *referenceIndex {
	ix := &referenceIndex{
		products: make(map[string]Product, len(products)),
		counties: make(map[string]string, len(counties)),
	}
	for _, p := range products {
		ix.products[keyString(p.ID)] = p
	}
	for _, c := range counties {
		ix.counties[keyString(c.ID)] = c.Name
	}
	return ix
}

// enrich fills in buyer and product detail on carts that only carry
// reference ids. Carts with embedded detail are left untouched.
func (ix *referenceIndex) enrich(cart *Cart) {
	if cart.CountyName == "" && cart.CountyID != nil {
		cart.CountyName = ix.counties[keyString(cart.CountyID)]
	}
	for i := range cart.Products {
		item := &cart.Products[i]
		if item.Name != "" || item.ProductID == nil {
			continue
		}
		product, ok := ix.products[keyString(item.ProductID)]
		if !ok {
			continue
		}
		item.Name = product.Name
		item.Measurements = product.Measurements
		item.Norms = product.Norms
	}
}

// expandCarts flattens every cart's product list into one row per line item.
// Carts whose demand id is not in the selected set, items with a negative
// quantity, and items that yield an empty description are dropped; the count
// of dropped rows is returned for the run report.
func expandCarts(carts []Cart, demandNames map[string]string) ([]OrderRow, int) {
	var rows []OrderRow
	dropped := 0
	for _, cart := range carts {
		name, selected := demandNames[cart.DemandID]
		if !selected {
			dropped += len(cart.Products)
			continue
		}
		for _, item := range cart.Products {
			desc := productDescription(item.Name, item.Measurements, item.Norms)
			if desc == "" || item.Quantity < 0 {
				dropped++
				continue
			}
			rows = append(rows, OrderRow{
				Buyer:      cart.CountyName,
				Product:    desc,
				Quantity:   item.Quantity,
				DemandID:   cart.DemandID,
				DemandName: name,
			})
		}
	}
	return rows, dropped
}

func rowsForDemand(rows []OrderRow, demandID string) []OrderRow {
	var out []OrderRow
	for _, row := range rows {
		if row.DemandID == demandID {
			out = append(out, row)
		}
	}
	return out
}

// productDescription assembles the canonical pivot row key: the product name,
// then every measurement value in document order, then the norms, all space
// separated. Two distinct products that stringify identically collide in the
// matrix.
func productDescription(name string, measurements []bson.D, norms []string) string {
	parts := make([]string, 0, 1+len(measurements)+1)
	if name != "" {
		parts = append(parts, name)
	}
	for _, m := range measurements {
		values := make([]string, 0, len(m))
		for _, elem := range m {
			values = append(values, stringify(elem.Value))
		}
		if joined := strings.Join(values, " "); joined != "" {
			parts = append(parts, joined)
		}
	}
	if len(norms) > 0 {
		parts = append(parts, strings.Join(norms, " "))
	}
	return strings.Join(parts, " ")
}

// keyString coerces a join key to a single textual representation. The
// collections are not consistent about id types (ObjectID here, hex string or
// number there); without this coercion mismatched rows silently vanish from
// the report.
func keyString(v interface{}) string {
	switch k := v.(type) {
	case primitive.ObjectID:
		return k.Hex()
	case string:
		return k
	case int:
		return strconv.Itoa(k)
	case int32:
		return strconv.FormatInt(int64(k), 10)
	case int64:
		return strconv.FormatInt(k, 10)
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", k)
	}
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return keyString(v)
}
