package sources

import (
	"log/slog"

	"newschomp/internal/infrastructure/fetch"
	"newschomp/internal/logging"
	"newschomp/internal/source"
)

// RegisterAll wires every publisher adapter into the registry together
// with the exact hostnames its article URLs use. Subdomains are listed
// explicitly; domain matching is plain string equality.
func RegisterAll(reg *source.Registry, f *fetch.Client, logger *slog.Logger) {
	src := func(name string) *slog.Logger { return logging.Component(logger, "source."+name) }

	reg.Register(NewAPNews(f, src("apnews")), "apnews.com")
	reg.Register(NewBBC(f, src("bbc")), "bbc.com", "bbc.co.uk")
	reg.Register(NewReuters(f, src("reuters")), "reuters.com")
	reg.Register(NewGoogleNews(f, src("googlenews")), "news.google.com")

	reg.Register(NewAustinChronicle(f, src("austinchronicle")), "austinchronicle.com")
	reg.Register(NewBlockClubChicago(f, src("blockclubchicago")), "blockclubchicago.org")
	reg.Register(NewDoorCountyPulse(f, src("doorcountypulse")), "doorcountypulse.com")
	reg.Register(NewFolioWeekly(f, src("folioweekly")), "folioweekly.com")
	reg.Register(NewGambit(f, src("gambit")), "nola.com")
	reg.Register(NewGothamist(f, src("gothamist")), "gothamist.com")
	reg.Register(NewIExaminer(f, src("iexaminer")), "iexaminer.org")
	reg.Register(NewLATaco(f, src("lataco")), "lataco.com")
	reg.Register(NewMagazine303(f, src("303magazine")), "303magazine.com")
	reg.Register(NewMiamiLiving(f, src("miamiliving")), "miamilivingmagazine.com")
	reg.Register(NewSlugMag(f, src("slugmag")), "slugmag.com")
	reg.Register(NewSTLMag(f, src("stlmag")), "stlmag.com")
	reg.Register(NewUrbanMilwaukee(f, src("urbanmilwaukee")), "urbanmilwaukee.com")
}
