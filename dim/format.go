package dim

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	diameterSymbol = "Ø"
	radiusPrefix   = "R"
	degreeSymbol   = "°"
	// measurementPlaceholder in a text override stands for the generated text.
	measurementPlaceholder = "<>"
	// suppressedText as a text override hides the label.
	suppressedText = " "
)

// FormatMeasurement returns the label text of a measured value. Rounding
// (DIMRND, not for angles), decimal precision (DIMDEC/DIMADEC), zero
// suppression (DIMZIN/DIMAZIN), the kind decoration and the decimal
// separator (DIMDSEP) are applied in that order. The override then replaces
// the result: an empty override keeps it, a single space hides the label
// and "<>" inside any other override stands for the generated text.
// The boolean result is false when the label is hidden.
func FormatMeasurement(value float64, kind Kind, st Style, override string) (string, bool) {
	switch override {
	case suppressedText:
		return "", false
	case "":
	default:
		if !strings.Contains(override, measurementPlaceholder) {
			return override, true
		}
	}
	angular := kind == KindAngular || kind == KindAngular3Point
	prec, zin := st.Decimals, st.ZeroSuppression
	if angular {
		prec, zin = st.AngularDecimals, st.AngularZeroSuppression
	} else if st.Round > 0 {
		value = math.Round(value/st.Round) * st.Round
	}
	s := strconv.FormatFloat(value, 'f', prec, 64)
	s = suppressZeros(s, zin)
	switch kind {
	case KindDiametric:
		s = diameterSymbol + s
	case KindRadial:
		s = radiusPrefix + s
	case KindAngular, KindAngular3Point:
		s += degreeSymbol
	}
	if st.DecimalSeparator != "" && st.DecimalSeparator != "." {
		s = strings.Replace(s, ".", st.DecimalSeparator, 1)
	}
	if override != "" {
		s = strings.ReplaceAll(override, measurementPlaceholder, s)
	}
	return s, true
}

// suppressZeros applies the DIMZIN leading (4) and trailing (8) zero bits to
// a formatted decimal number.
func suppressZeros(s string, mode int) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if strings.Trim(s, "0.") == "" {
		// Negative zero and values rounded to zero lose their sign.
		neg = false
	}
	if mode&SuppressTrailingZeros != 0 && strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if mode&SuppressLeadingZeros != 0 && strings.HasPrefix(s, "0.") {
		s = s[1:]
	}
	if s == "" {
		s = "0"
	}
	if neg {
		s = "-" + s
	}
	return s
}

// TextWidth returns the advance width of s at the given text height,
// measured with the fixed 7x13 face scaled to height.
func TextWidth(s string, height float64) float64 {
	face := basicfont.Face7x13
	adv := font.MeasureString(face, s)
	return float64(adv) / 64 * height / float64(face.Height)
}
