package scheduler

// Grid owns the fixed set of tiles that exactly tile a square texture of
// side textureSize into tileSize x tileSize squares, each pixel covered by
// exactly one tile.
type Grid struct {
	TextureSize uint32
	TileSize    uint32
	Cols, Rows  uint32
	Tiles       []*Tile
}

// NewGrid builds a Grid. Panics if textureSize is not an exact multiple of
// tileSize — that invariant is a construction-time contract, not a runtime
// condition callers need to recover from.
func NewGrid(textureSize, tileSize uint32) *Grid {
	if tileSize == 0 || textureSize%tileSize != 0 {
		panic("scheduler: textureSize must be a positive multiple of tileSize")
	}

	cols := textureSize / tileSize
	rows := cols

	g := &Grid{
		TextureSize: textureSize,
		TileSize:    tileSize,
		Cols:        cols,
		Rows:        rows,
		Tiles:       make([]*Tile, 0, cols*rows),
	}

	index := 0
	for row := uint32(0); row < rows; row++ {
		for col := uint32(0); col < cols; col++ {
			g.Tiles = append(g.Tiles, &Tile{
				Index: index,
				TexRect: TexRect{
					X: col * tileSize,
					Y: row * tileSize,
					W: tileSize,
					H: tileSize,
				},
			})
			index++
		}
	}
	return g
}
