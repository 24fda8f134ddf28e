package prompts

const matchInstructions = `VIBE ANIMAL MATCH

You are looking at a photo whose background has been removed. Identify the animal whose energy and style best matches this image. Judge the overall vibe: posture, colors, clothing, expression, and aesthetic. Do not describe what animal the subject literally resembles unless that is also the strongest vibe match.

Explain why the animal fits, and connect the visual elements of the image to the animal's character. Keep it playful and positive.`

// Instructions returns the built-in task instructions for the vibe match.
func Instructions() string {
	return matchInstructions
}
