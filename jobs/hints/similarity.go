package hints

// Similarity devolve 1 - distância/maior tamanho, em runas.
// Duas strings vazias são idênticas (1.0).
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1.0
	}
	return float64(longest-distance(ra, rb)) / float64(longest)
}

// Distance é a distância de Levenshtein entre a e b (inserção, remoção e
// substituição com custo 1), calculada sobre runas.
func Distance(a, b string) int {
	return distance([]rune(a), []rune(b))
}

func distance(a, b []rune) int {
	// tabela (len(a)+1) x (len(b)+1)
	d := make([][]int, len(a)+1)
	for i := range d {
		d[i] = make([]int, len(b)+1)
		d[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				d[i][j] = d[i-1][j-1]
				continue
			}
			d[i][j] = 1 + min(d[i-1][j-1], d[i][j-1], d[i-1][j])
		}
	}
	return d[len(a)][len(b)]
}
