package analyzer

// Status は、一つのURLに対する処理がどのように終了したかを表す閉じた列挙です。
type Status string

const (
	// StatusOK は、率の算出まで完了したことを示します。
	StatusOK Status = "OK"
	// StatusFetchError は、HTTPトランスポート障害または非成功ステータスを示します。
	StatusFetchError Status = "FETCH_ERROR"
	// StatusParsingError は、記事本文が見つからない（非対応ドキュメント）ことを示します。
	StatusParsingError Status = "PARSING_ERROR"
	// StatusTimeout は、フェッチまたは解析フェーズのデッドライン超過を示します。
	StatusTimeout Status = "TIMEOUT"
	// StatusInvalidURL は、ネットワーク到達前に検出した構文不正なURLを示します。
	StatusInvalidURL Status = "INVALID_URL"
)
