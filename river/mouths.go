package river

// FindMouths returns every ocean node that touches land.
//
// Each mouth is biased toward its first land neighbour, with magnitude
// biasMag.
func FindMouths(nodes []Node, biasMag float64) []Mouth {
	mouths := []Mouth{}
	for i := range nodes {
		n := &nodes[i]
		if n.H >= 0 {
			continue
		}
		for _, j := range n.Neighbors {
			if j == None || nodes[j].H < 0 {
				continue
			}
			dir := nodes[j].UV.Sub(n.UV).Normalize()
			mouths = append(mouths, Mouth{Node: uint32(i), Bias: dir.Mul(biasMag)})
			break
		}
	}
	return mouths
}
