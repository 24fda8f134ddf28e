package background

import "errors"

var (
	// ErrTransform indicates the remover failed after the input was decoded.
	ErrTransform = errors.New("background removal failed")
	// ErrUnreadableImage indicates the input bytes are not a decodable image.
	ErrUnreadableImage = errors.New("unreadable image")
	// ErrImageTooLarge indicates the declared dimensions exceed the pixel limit.
	// It is reported before any pixel data is decoded.
	ErrImageTooLarge = errors.New("image dimensions exceed limit")
	// ErrNotStarted indicates Remove was called before Start loaded the model.
	ErrNotStarted = errors.New("background remover not started")
)
