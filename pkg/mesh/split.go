package mesh

// Split partitions the mesh into connected components. Two triangles are
// connected when they share at least one vertex (exact coordinate match).
// Components are returned in the order their first triangle appears in the
// mesh. With onlyWatertight set, components with boundary edges are dropped.
func (m *Mesh) Split(onlyWatertight bool) []*Mesh {
	if len(m.Triangles) == 0 {
		return nil
	}

	index := newVertexIndex()
	vertices := make([][3]int, len(m.Triangles))
	for i, triangle := range m.Triangles {
		vertices[i] = [3]int{
			index.id(triangle.V1),
			index.id(triangle.V2),
			index.id(triangle.V3),
		}
	}

	uf := newUnionFind(len(index.ids))
	for _, v := range vertices {
		uf.union(v[0], v[1])
		uf.union(v[1], v[2])
	}

	// Group triangles by component root, preserving encounter order.
	groups := make(map[int]*Mesh)
	var order []int
	for i, triangle := range m.Triangles {
		root := uf.find(vertices[i][0])
		group, ok := groups[root]
		if !ok {
			group = New(m.Name)
			groups[root] = group
			order = append(order, root)
		}
		group.AddTriangle(triangle)
	}

	components := make([]*Mesh, 0, len(order))
	for _, root := range order {
		component := groups[root]
		if onlyWatertight && !component.IsWatertight() {
			continue
		}
		components = append(components, component)
	}
	return components
}

// unionFind is a disjoint-set structure with path halving and union by size
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}
