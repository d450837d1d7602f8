package helpers

import "github.com/gin-gonic/gin"

// QueryMap flattens the request query string into a simple key -> first value
// map, the shape the repository list parser works with. Repeated keys keep
// their first value.
func QueryMap(c *gin.Context) map[string]string {
	values := make(map[string]string)
	for key, list := range c.Request.URL.Query() {
		if len(list) > 0 {
			values[key] = list[0]
		}
	}
	return values
}
