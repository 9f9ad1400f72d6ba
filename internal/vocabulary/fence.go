package vocabulary

import (
	"strings"
)

// fencedBlock is one ``` delimited region of a completion, with its language
// tag lowered for comparison.
type fencedBlock struct {
	language string
	body     string
}

const fenceMarker = "```"

// scanFencedBlocks walks the text line by line and collects every fenced
// region. An unterminated fence yields a block running to the end of the
// text, so truncated completions still surface their partial payload.
func scanFencedBlocks(text string) []fencedBlock {
	var blocks []fencedBlock

	lines := strings.Split(text, "\n")
	inFence := false
	language := ""
	var body []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, fenceMarker) {
			if inFence {
				blocks = append(blocks, fencedBlock{
					language: language,
					body:     strings.TrimSpace(strings.Join(body, "\n")),
				})
				inFence = false
				body = nil
				continue
			}
			inFence = true
			language = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, fenceMarker)))
			continue
		}
		if inFence {
			body = append(body, line)
		}
	}

	if inFence {
		blocks = append(blocks, fencedBlock{
			language: language,
			body:     strings.TrimSpace(strings.Join(body, "\n")),
		})
	}

	return blocks
}

// candidatePayloads returns the payloads to try parsing, most specific first:
// the whole trimmed text, then json-tagged fences, then any other fence.
// Fence interiors that themselves contain fences are rescanned, so a payload
// nested in two fence layers is still reachable.
func candidatePayloads(text string) []string {
	candidates := []string{strings.TrimSpace(text)}

	blocks := scanFencedBlocks(text)
	var jsonBlocks, otherBlocks []string
	for _, block := range blocks {
		interior := block.body
		if strings.Contains(interior, fenceMarker) {
			for _, inner := range candidatePayloads(interior) {
				if block.language == "json" {
					jsonBlocks = append(jsonBlocks, inner)
				} else {
					otherBlocks = append(otherBlocks, inner)
				}
			}
			continue
		}
		if block.language == "json" {
			jsonBlocks = append(jsonBlocks, interior)
		} else {
			otherBlocks = append(otherBlocks, interior)
		}
	}

	candidates = append(candidates, jsonBlocks...)
	candidates = append(candidates, otherBlocks...)
	return candidates
}
