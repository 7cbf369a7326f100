package game

import (
	"hash/fnv"
	"sort"
)

// Hash returns a 64-bit hash of the board that is order-independent over
// snakes and over food (spec.md §4.E, §8). The teacher's boardHash
// (main.go) concatenated snakes and food in board order, which produces
// different hashes for semantically identical positions reached via
// different snake orderings; this implementation sorts both lists before
// hashing so transposed positions collide as intended.
func Hash(b Board) uint64 {
	type snakeKey struct {
		key    string
		health int
	}
	keys := make([]snakeKey, 0, len(b.Snakes))
	for _, s := range b.Snakes {
		keys = append(keys, snakeKey{key: bodyKey(s.Body), health: s.Health})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].key != keys[j].key {
			return keys[i].key < keys[j].key
		}
		return keys[i].health < keys[j].health
	})

	food := append([]Coord(nil), b.Food...)
	sort.Slice(food, func(i, j int) bool {
		if food[i].X != food[j].X {
			return food[i].X < food[j].X
		}
		return food[i].Y < food[j].Y
	})

	h := fnv.New64a()
	for _, k := range keys {
		var buf [5]byte
		buf[0] = 'h'
		putInt(buf[1:5], k.health)
		h.Write([]byte(k.key))
		h.Write(buf[:])
	}
	for _, f := range food {
		var buf [9]byte
		buf[0] = 'f'
		putCoord(buf[1:], f)
		h.Write(buf[:])
	}
	return h.Sum64()
}

func bodyKey(body []Coord) string {
	buf := make([]byte, 0, len(body)*8)
	for _, c := range body {
		var tmp [8]byte
		putCoord(tmp[:], c)
		buf = append(buf, tmp[:]...)
	}
	return string(buf)
}

func putCoord(dst []byte, c Coord) {
	putInt(dst[:4], c.X)
	putInt(dst[4:8], c.Y)
}

func putInt(dst []byte, v int) {
	u := uint32(int32(v))
	dst[0] = byte(u >> 24)
	dst[1] = byte(u >> 16)
	dst[2] = byte(u >> 8)
	dst[3] = byte(u)
}
