package swagger

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSwaggerHandler(t *testing.T) {
	Convey("TestSwaggerHandler", t, func() {
		So(SwaggerUrl, ShouldEqual, "/swagger/*any")
		So(SwaggerHandler, ShouldNotBeNil)
	})
}
