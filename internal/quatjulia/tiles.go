package quatjulia

import "fmt"

// Tile is the inclusive column range [FromWidth, ToWidth] over all rows.
type Tile struct {
	Index     int
	FromWidth int
	ToWidth   int
}

// Width is the number of columns in the tile.
func (t Tile) Width() int { return t.ToWidth - t.FromWidth + 1 }

// PartitionTiles splits width into width/tileWidthHint column tiles.
func PartitionTiles(width, tileWidthHint int) ([]Tile, error) {
	if tileWidthHint <= 0 {
		return nil, fmt.Errorf("%w: tile width hint must be positive, got %d", ErrInvalidParams, tileWidthHint)
	}
	n := width / tileWidthHint
	if n < 1 {
		n = 1
	}
	return PartitionTilesN(width, n)
}

// PartitionTilesN splits width into at most count tiles, each at least
// MinTileWidth columns wide (fewer tiles are used when width is too small;
// at least one tile is always returned). The last tile absorbs the remainder.
func PartitionTilesN(width, count int) ([]Tile, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: width must be positive, got %d", ErrInvalidParams, width)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: tile count must be positive, got %d", ErrInvalidParams, count)
	}
	for count > 1 && width/count < MinTileWidth {
		count--
	}
	tw := width / count
	tiles := make([]Tile, count)
	for i := range tiles {
		tiles[i] = Tile{Index: i, FromWidth: i * tw, ToWidth: (i+1)*tw - 1}
	}
	tiles[count-1].ToWidth = width - 1
	DebugLog("Partitioned width %d into %d tiles of %d px", width, count, tw)
	return tiles, nil
}
