package flatfile

import "errors"

var ErrMalformedRecord = errors.New("malformed reservation record")
