package selection

import "errors"

// ErrBadSelection is returned when a category, kind or parameter cannot be
// interpreted.
var ErrBadSelection = errors.New("bad selection")
