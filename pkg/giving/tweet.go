package giving

import (
	"fmt"
	"net/url"

	"github.com/mindthegap/mindthegap/pkg/numfmt"
)

const tweetIntentURL = "https://twitter.com/intent/tweet"

// TweetText phrases the household's giving rate as a monthly figure for the
// second entry of the reference list.
func TweetText(s Summary, f *numfmt.Formatter) string {
	target := Billionaires[1]
	monthly := int(float64(target.NetWorth) * s.Percentage / 100 / 12)
	return fmt.Sprintf(
		"Hey @JeffBezos, I give %s of my income to charity. That would be %s a month for you. #MindTheGap",
		f.Percent(s.Percentage),
		f.Currency(monthly),
	)
}

// TweetURL builds a tweet intent link carrying the text and the share link.
func TweetURL(s Summary, shareLink string, f *numfmt.Formatter) string {
	values := url.Values{}
	values.Set("text", TweetText(s, f))
	values.Set("url", shareLink)
	return tweetIntentURL + "?" + values.Encode()
}
