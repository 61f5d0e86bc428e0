package png

import (
	"fmt"

	"github.com/simonhull/pngme/internal/types"
)

// knownCritical lists the critical chunk types defined by the PNG standard.
var knownCritical = map[ChunkType]bool{
	TypeIHDR:               true,
	MustChunkType("PLTE"): true,
	TypeIDAT:               true,
	TypeIEND:               true,
}

// Check reports structural problems that do not prevent parsing: a first
// chunk other than IHDR, a missing or misplaced IEND, reserved-bit violations
// and unknown critical chunks.
func Check(c *Container) []types.Warning {
	var warnings []types.Warning

	if len(c.chunks) == 0 {
		return []types.Warning{{Stage: "structure", Message: "file contains no chunks"}}
	}

	if first := c.chunks[0].Type(); first != TypeIHDR {
		warnings = append(warnings, types.Warning{
			Stage:   "structure",
			Message: fmt.Sprintf("first chunk is %s, expected IHDR", first),
			Offset:  int64(len(Signature)),
		})
	}

	offset := int64(len(Signature))
	endSeen := false
	for i, chunk := range c.chunks {
		t := chunk.Type()

		if t == TypeIEND {
			if i != len(c.chunks)-1 {
				warnings = append(warnings, types.Warning{
					Stage:   "structure",
					Message: fmt.Sprintf("IEND is chunk %d of %d, expected last", i+1, len(c.chunks)),
					Offset:  offset,
				})
			}
			endSeen = true
		}

		if !t.IsReservedBitValid() {
			warnings = append(warnings, types.Warning{
				Stage:   "chunk type",
				Message: fmt.Sprintf("%s has the reserved bit set", t),
				Offset:  offset,
			})
		}

		if t.IsCritical() && !knownCritical[t] {
			warnings = append(warnings, types.Warning{
				Stage:   "chunk type",
				Message: fmt.Sprintf("unknown critical chunk %s", t),
				Offset:  offset,
			})
		}

		offset += int64(chunk.EncodedLen())
	}

	if !endSeen {
		warnings = append(warnings, types.Warning{
			Stage:   "structure",
			Message: "missing IEND chunk",
		})
	}

	return warnings
}
