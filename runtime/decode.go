package binarycookies

import "fmt"

const (
	fileHeaderSize   = 8           // magic + page count
	pageHeaderSize   = 8           // tag + cookie count
	cookieHeaderSize = 10*4 + 2*8  // ten u32 words, two f64 timestamps
	trailerSize      = 4 + 4 + 4   // checksum, footer, plist size
	checksumStride   = 4           // one byte summed per stride
	offsetSize       = 4           // entries in the page-size and offset tables
)

var (
	fileMagic     = []byte("cook")
	pageTag       = []byte{0x00, 0x00, 0x01, 0x00}
	pageHeaderEnd = []byte{0x00, 0x00, 0x00, 0x00}
	fileFooter    = []byte{0x07, 0x17, 0x20, 0x05}
)

// Decode decodes a binary cookie file and returns its cookies in page
// order, then in the order each page lists them. On any error it
// returns nil and a *DecodeError.
//
// The returned cookies alias b.
func Decode(b []byte) ([]Cookie, error) {
	f, err := DecodePages(b)
	if err != nil {
		return nil, err
	}
	return f.Cookies(), nil
}

// DecodePages is Decode keeping the page structure and trailer.
func DecodePages(b []byte) (*File, error) {
	file := span{b: b}

	if len(b) < fileHeaderSize {
		return nil, inFile.fail(KindTooShort, 0, "file header needs %d bytes, have %d", fileHeaderSize, len(b))
	}
	c := file.cursor()
	if got, ok := c.tag(fileMagic); !ok {
		return nil, inFile.fail(KindBadMagic, 0, "file magic is %q, want %q", got, fileMagic)
	}
	pageCount, _ := c.uint32BE()

	tableEnd := uint64(fileHeaderSize) + offsetSize*uint64(pageCount)
	if tableEnd > file.len() {
		return nil, inFile.fail(KindTooShort, fileHeaderSize,
			"page-size table for %d pages ends at %d, file is %d bytes", pageCount, tableEnd, len(b))
	}
	sizes := make([]uint32, pageCount)
	for i := range sizes {
		sizes[i], _ = c.uint32BE()
	}

	out := &File{Pages: make([]Page, 0, len(sizes))}
	var sum uint32
	next := tableEnd
	for i, size := range sizes {
		page, ok := file.slice(next, uint64(size))
		if !ok {
			return nil, inPage(i).fail(KindTooShort, int(next),
				"page of %d bytes ends at %d, file is %d bytes", size, next+uint64(size), len(b))
		}
		p, err := decodePage(page, i)
		if err != nil {
			return nil, err
		}
		sum = checksum(sum, page.b)
		out.Pages = append(out.Pages, p)
		next += uint64(size)
	}

	trailer, _ := file.tail(next)
	if trailer.len() < trailerSize {
		return nil, inFile.fail(KindTooShort, trailer.start,
			"trailer needs %d bytes, have %d", trailerSize, trailer.len())
	}
	c = trailer.cursor()
	saved, _ := c.uint32BE()
	if saved != sum {
		return nil, inFile.fail(KindBadChecksum, trailer.start,
			"saved checksum %#08x, computed %#08x", saved, sum)
	}
	if got, ok := c.tag(fileFooter); !ok {
		return nil, inFile.fail(KindBadMagic, c.pos()-len(fileFooter), "footer is % x, want % x", got, fileFooter)
	}
	plistSize, _ := c.uint32BE()
	if uint64(c.remaining()) != uint64(plistSize) {
		return nil, inFile.fail(KindBadParse, c.pos(),
			"plist size is %d, but %d bytes remain", plistSize, c.remaining())
	}
	plist, _ := c.bytes(c.remaining())

	out.Checksum = sum
	out.Plist = plist
	return out, nil
}

func decodePage(page span, index int) (Page, error) {
	at := inPage(index)

	if page.len() < pageHeaderSize {
		return Page{}, at.fail(KindTooShort, page.start,
			"page header needs %d bytes, page is %d", pageHeaderSize, page.len())
	}
	c := page.cursor()
	if got, ok := c.tag(pageTag); !ok {
		return Page{}, at.fail(KindBadMagic, page.start, "page tag is % x, want % x", got, pageTag)
	}
	count, _ := c.uint32LE()

	headerEnd := uint64(pageHeaderSize) + offsetSize*uint64(count) + uint64(len(pageHeaderEnd))
	if headerEnd > page.len() {
		return Page{}, at.fail(KindTooShort, page.start,
			"offset table for %d cookies needs %d bytes, page is %d", count, headerEnd, page.len())
	}
	offsets := make([]uint32, count)
	for i := range offsets {
		offsets[i], _ = c.uint32LE()
	}
	if got, ok := c.tag(pageHeaderEnd); !ok {
		return Page{}, at.fail(KindBadMagic, c.pos()-len(pageHeaderEnd),
			"page header terminator is % x, want % x", got, pageHeaderEnd)
	}

	cookies := make([]Cookie, 0, len(offsets))
	for i, off := range offsets {
		cookie, err := decodeCookie(page, off, inCookie(index, i))
		if err != nil {
			return Page{}, err
		}
		cookies = append(cookies, cookie)
	}

	return Page{
		Start:   page.start,
		End:     page.end(),
		Offsets: offsets,
		Cookies: cookies,
	}, nil
}

func decodeCookie(page span, off uint32, at where) (Cookie, error) {
	header, ok := page.slice(uint64(off), cookieHeaderSize)
	if !ok {
		return Cookie{}, at.fail(KindTooShort, page.start+int(min(uint64(off), page.len())),
			"record header needs %d bytes at page offset %d, page is %d", cookieHeaderSize, off, page.len())
	}

	c := header.cursor()
	size, _ := c.uint32LE()
	var cookie Cookie
	cookie.Version, _ = c.uint32LE()
	cookie.Flags, _ = c.uint32LE()
	cookie.Port, _ = c.uint32LE()
	var fieldOffsets [len(stringFields)]uint32
	for i := range fieldOffsets {
		fieldOffsets[i], _ = c.uint32LE()
	}
	cookie.Expiry, _ = c.float64LE()
	cookie.Creation, _ = c.float64LE()

	record, ok := page.slice(uint64(off), uint64(size))
	if !ok {
		return Cookie{}, at.fail(KindBadParse, header.start,
			"record of %d bytes ends past end of page at %d", size, page.end())
	}
	if size == 0 || record.b[size-1] != 0 {
		return Cookie{}, at.fail(KindBadParse, header.start, "record does not end with a NUL byte")
	}

	for i, fo := range fieldOffsets {
		if fo == 0 {
			continue
		}
		sf := stringFields[i]
		text, ok := record.cstring(uint64(fo))
		if !ok {
			return Cookie{}, at.withField(sf.key).fail(KindBadParse, header.start,
				"%s offset %d outside record of %d bytes", sf.key, fo, size)
		}
		*sf.get(&cookie) = Field{Value: text, Present: true}
	}

	return cookie, nil
}

// checksum adds the first byte of every checksumStride bytes of page to
// sum, wrapping on overflow.
func checksum(sum uint32, page []byte) uint32 {
	for i := 0; i < len(page); i += checksumStride {
		sum += uint32(page[i])
	}
	return sum
}

// String summarises the file for logs.
func (f *File) String() string {
	return fmt.Sprintf("%d pages, %d cookies, checksum %#08x, %d byte plist",
		len(f.Pages), len(f.Cookies()), f.Checksum, len(f.Plist))
}
