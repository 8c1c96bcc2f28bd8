package webcomics

import "github.com/kulugary/mediahub/internal/config"

// defaultFeeds is the built-in scrape list, used when no feeds are
// configured. Flat (bucket, url) pairs; the same feed may appear under
// several buckets.
var defaultFeeds = []config.WebcomicFeed{
	{Bucket: "reading", URL: "https://beyondcanon.com/story/feed?type=rss"},
	{Bucket: "reading", URL: "https://killsixbilliondemons.com/feed/"},

	{Bucket: "favourites", URL: "https://piperka.net/s/rss/4379"},
	{Bucket: "favourites", URL: "https://killsixbilliondemons.com/feed/"},

	{Bucket: "dropped", URL: "https://www.webtoons.com/en/romance/letsplay/rss?title_no=1218"},
	{Bucket: "dropped", URL: "https://helvetica.jnwiedle.com/feed/"},
	{Bucket: "dropped", URL: "https://www.deconreconstruction.com/vasterror/rss"},
	{Bucket: "dropped", URL: "https://piperka.net/s/rss/7979"},
	{Bucket: "dropped", URL: "https://www.webtoons.com/en/challenge/punderworld/rss?title_no=312584"},
	{Bucket: "dropped", URL: "https://backcomic.com/rss.xml"},
	{Bucket: "dropped", URL: "https://www.webtoons.com/en/slice-of-life/batman-wayne-family-adventures/rss?title_no=3180"},
	{Bucket: "dropped", URL: "https://www.webtoons.com/en/challenge/countdown-to-countdown/rss?title_no=316884"},
	{Bucket: "dropped", URL: "https://www.paranatural.net/comic/rss"},
	{Bucket: "dropped", URL: "https://www.webtoons.com/en/comedy/not-so-shoujo-love-story/rss?title_no=2189"},
	{Bucket: "dropped", URL: "https://www.starimpactcomic.com/comic/rss"},
	{Bucket: "dropped", URL: "https://www.webtoons.com/en/challenge/nerd-and-jock/rss?title_no=135963"},

	{Bucket: "completed", URL: "https://www.neversatisfiedcomic.com/comic/rss"},
	{Bucket: "completed", URL: "https://piperka.net/s/rss/4379"},
	{Bucket: "completed", URL: "https://www.webtoons.com/en/supernatural/unholy-blood/rss?title_no=1262"},
	{Bucket: "completed", URL: "https://piperka.net/s/rss/7744"},
	{Bucket: "completed", URL: "https://www.webtoons.com/en/comedy/axed/rss?title_no=1558"},
}

// defaultOverrides patches feeds that publish incomplete metadata: missing
// cover art, untitled aggregator feeds, absent author tags. Keyed by feed
// URL and merged over the parsed values.
var defaultOverrides = map[string]config.WebcomicOverride{
	"https://beyondcanon.com/story/feed?type=rss": {
		Thumbnail:   "https://hsmusic.wiki/media/album-art/beyond-canon/cover.png",
		Description: "An official continuation of Homestuck.",
		Genres:      []string{"sci-fi", "fantasy", "weird", "romance", "games"},
	},
	"https://www.webtoons.com/en/challenge/countdown-to-countdown/rss?title_no=316884": {
		Genres: []string{"sci-fi", "post-apocalyptic", "romance"},
	},
	"https://killsixbilliondemons.com/feed/": {
		Thumbnail: "https://m.media-amazon.com/images/I/71OcgobpryL._AC_UF1000,1000_QL80_.jpg",
		Genres:    []string{"fantasy", "horror", "supernatural", "romance"},
	},
	"https://www.paranatural.net/comic/rss": {
		Genres:      []string{"fantasy", "weird"},
		Description: "Paranatural is best described as “X-Men meets Ghostbusters except everyone’s twelve.” It’s a comedy/action comic about a group of middle school kids with ghostly superpowers fighting evil spirits and investigating paranormal activity in their hometown.",
		Author:      "Zack Morrison",
		Thumbnail:   "https://hivemill.com/cdn/shop/products/P-PARA-03-SP-SHOCK.jpg?v=1527299535",
	},
	"https://www.starimpactcomic.com/comic/rss": {
		Description: "Star Impact follows Aster, a spunky young girl who enters the world of super powered boxing with the gloves of her idol, a legendary boxer who disappeared ten years ago. She attempts to rise the ranks as she meets friends, makes enemies, and tries to uncover the mystery of her missing hero. ",
		Author:      "Jack McGee",
		Thumbnail:   "https://www.starimpactcomic.com/comics/1705704897-5.0.png",
	},
	"https://helvetica.jnwiedle.com/feed/": {
		Thumbnail:   "https://hiveworkscomics.com/frontboxes/hubbox_HELVETICA.png",
		Genres:      []string{"weird"},
		Author:      "J.N. Wiedle",
		Description: "This story follows Helvetica's quest to uncover who he was in life, his existential crises, and his struggle to to make death worth living.",
	},
	"https://www.deconreconstruction.com/vasterror/rss": {
		Thumbnail: "https://static.tvtropes.org/pmwiki/pub/images/00001.gif",
	},
	"https://piperka.net/s/rss/7979": {
		Title:     "17776: What football will look like in the future",
		Author:    "Jon Bois",
		Thumbnail: "https://doorcountypulse.com/wp-content/uploads/2024/11/17776.png",
	},
	"https://backcomic.com/rss.xml": {
		Thumbnail: "https://backcomic.com/s/back2021-finalsomething-1_nkw1h1.jpg",
	},
	"https://www.neversatisfiedcomic.com/comic/rss": {
		Thumbnail:   "https://www.neversatisfiedcomic.com/comics/1461873285-comic%20cover.png",
		Description: "Never Satisfied is the story of apprentices competing for the position of magician representative for their city, serving directly under the king. There's no greater job for a magician, so who could want more? Updates Mondays and Fridays.",
		Genres:      []string{"fantasy"},
		Author:      "Taylor Robin",
	},
	"https://piperka.net/s/rss/4379": {
		Title:       "Homestuck",
		Thumbnail:   "https://freshcomics.s3.amazonaws.com/cache/9d/9d/9d9d690af102c8cb4349213996fd306f.jpg",
		Genres:      []string{"sci-fi", "fantasy", "weird", "romance", "games"},
		Description: "Follows the adventure of four friends as they try to survive the game Sburb and save the multiverse.",
		Author:      "Andrew Hussie",
		Link:        "http://homestuck.com",
	},
	"https://piperka.net/s/rss/7744": {
		Title:       "[un]Divine",
		Author:      "Ayme Sotuyo",
		Thumbnail:   "https://www.undivinecomic.com/comics/1595833704-UD%20362-363%20sm.png",
		Description: "[un]Divine is a dark fantasy comic that deals with revenge, morality, friendship and monsters. Not really suitable for people under 14 for mild language, blood and violence plus the occasional non-sexual nudity.",
		Genres:      []string{"fantasy"},
	},
}
