package paging

// Cursor keys, one per resource id stream.
const (
	KeyAdministrator      = "lastAdministratorId"
	KeyAdministratorGroup = "lastAdministratorGroupId"
	KeyContact            = "lastContactId"
	KeyContactGroup       = "lastGroupId"
	KeyTemplate           = "lastTemplateId"
)

// Cursor is the request-local key/value bag carried by a continuation token.
type Cursor struct {
	codec *Codec
	data  map[string]int64
}

// NewCursor returns an empty cursor bound to c.
func (c *Codec) NewCursor() *Cursor {
	return &Cursor{codec: c, data: map[string]int64{}}
}

// Parse decodes token into a cursor. Invalid tokens yield an empty cursor.
func (c *Codec) Parse(token string) *Cursor {
	return &Cursor{codec: c, data: c.Decode(token)}
}

func (cur *Cursor) Set(key string, value int64) {
	cur.data[key] = value
}

func (cur *Cursor) Get(key string) (int64, bool) {
	v, ok := cur.data[key]
	return v, ok
}

// GetOr returns the stored value for key, or def when the key is absent.
func (cur *Cursor) GetOr(key string, def int64) int64 {
	if v, ok := cur.data[key]; ok {
		return v
	}
	return def
}

// Token encodes the cursor into a continuation token.
func (cur *Cursor) Token() (string, error) {
	return cur.codec.Encode(cur.data)
}
