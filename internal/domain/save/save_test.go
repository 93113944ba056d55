package save_test

import (
	"path/filepath"
	"testing"

	"github.com/okian/ngplus/internal/domain/save"
	"github.com/smartystreets/goconvey/convey"
)

func TestEntry(t *testing.T) {
	convey.Convey("Given save entries", t, func() {
		convey.Convey("When the identifier starts with the end-game marker", func() {
			e := save.NewEntry("EndGameSave_final")

			convey.Convey("Then it is classified as an end-game save", func() {
				convey.So(e.IsEndGameSave(), convey.ShouldBeTrue)
				convey.So(e.IsPointOfNoReturn(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the identifier starts with the point-of-no-return marker", func() {
			e := save.NewEntry("PointOfNoReturn_01")

			convey.Convey("Then it is classified as PONR", func() {
				convey.So(e.IsPointOfNoReturn(), convey.ShouldBeTrue)
				convey.So(e.IsEndGameSave(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the marker appears later in the name", func() {
			e := save.NewEntry("Save_EndGameSave")

			convey.Convey("Then prefix matching does not classify it", func() {
				convey.So(e.IsEndGameSave(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the marker differs in case", func() {
			e := save.NewEntry("endgamesave_1")

			convey.Convey("Then matching is case-sensitive", func() {
				convey.So(e.IsEndGameSave(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When resolving the metadata path", func() {
			e := save.NewEntry("Save_03")

			convey.Convey("Then it joins base, identifier and file name", func() {
				convey.So(e.MetadataPath("base"), convey.ShouldEqual, filepath.Join("base", "Save_03", "metadata.9.json"))
			})
		})
	})
}
