package costing

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

// maxTraversalDepth acota el recorrido por si los datos persistidos quedaron
// corruptos (el grafo válido es acíclico y nunca lo alcanza).
const maxTraversalDepth = 512

// SupplyLister expone las aristas persistidas de la ficha técnica que el
// recorrido necesita. Lo implementa el repositorio de insumos.
type SupplyLister func(ctx context.Context, baseProductID string) ([]string, error)

// HasCircularDependency verifica si baseProductID ya aparece (transitivamente)
// en la cadena de insumos alcanzable desde candidateSupplyID. Se evalúa sobre
// las aristas EXISTENTES, antes de insertar la nueva: si agregar
// base -> candidate cerraría un ciclo, devuelve true.
func HasCircularDependency(ctx context.Context, list SupplyLister, candidateSupplyID, baseProductID string) (bool, error) {
	if candidateSupplyID == baseProductID {
		return true, nil
	}
	visited := map[string]bool{candidateSupplyID: true}
	queue := []string{candidateSupplyID}

	for depth := 0; len(queue) > 0 && depth < maxTraversalDepth; depth++ {
		next := make([]string, 0, len(queue))
		for _, id := range queue {
			supplies, err := list(ctx, id)
			if err != nil {
				return false, err
			}
			for _, s := range supplies {
				if s == baseProductID {
					return true, nil
				}
				if !visited[s] {
					visited[s] = true
					next = append(next, s)
				}
			}
		}
		queue = next
	}
	return false, nil
}

// Tipos de cambio que produce el diff de aristas.
const (
	EdgeAdded   = "added"
	EdgeUpdated = "updated"
	EdgeRemoved = "removed"
)

// EdgeChange describe una diferencia entre la ficha técnica persistida y la
// solicitada. El orden de salida es determinista (por SupplyID) para que la
// auditoría sea reproducible.
type EdgeChange struct {
	SupplyID string
	Kind     string
	OldQty   decimal.Decimal
	NewQty   decimal.Decimal
}

// DiffEdges compara el conjunto actual de aristas con el solicitado:
// las que desaparecen se eliminan, las que cambian de cantidad se actualizan
// y las nuevas se insertan.
func DiffEdges(current, requested map[string]decimal.Decimal) []EdgeChange {
	changes := make([]EdgeChange, 0, len(current)+len(requested))
	for id, oldQty := range current {
		newQty, ok := requested[id]
		if !ok {
			changes = append(changes, EdgeChange{SupplyID: id, Kind: EdgeRemoved, OldQty: oldQty})
			continue
		}
		if !newQty.Equal(oldQty) {
			changes = append(changes, EdgeChange{SupplyID: id, Kind: EdgeUpdated, OldQty: oldQty, NewQty: newQty})
		}
	}
	for id, newQty := range requested {
		if _, ok := current[id]; !ok {
			changes = append(changes, EdgeChange{SupplyID: id, Kind: EdgeAdded, NewQty: newQty})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].SupplyID < changes[j].SupplyID })
	return changes
}
