package validation

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Age   *int   `json:"age" binding:"omitempty,gte=0"`
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()

	err := binding.Validator.ValidateStruct(&samplePayload{Name: "", Email: "nope"})
	require.Error(t, err)

	details := ToDetails(err)
	require.Equal(t, "is required", details["name"])
	require.Equal(t, "must be a valid email", details["email"])
}

func TestToDetailsNegativeAge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()

	age := -1
	err := binding.Validator.ValidateStruct(&samplePayload{Name: "Alice", Email: "alice@x.com", Age: &age})
	require.Error(t, err)

	details := ToDetails(err)
	require.Equal(t, "must be 0 or greater", details["age"])
}

func TestToDetailsNilError(t *testing.T) {
	require.Nil(t, ToDetails(nil))
}
