package analyzer

import "fmt"

// Result は、一つのURLに対する処理結果です。ワーカーが終端状態に達した時点で
// 一度だけ生成され、その後変更されません。
// Rate は Status == OK の場合にのみ非nilで、JSONでは null として表現されます。
type Result struct {
	URL    string   `json:"url"`
	Status Status   `json:"status"`
	Rate   *float64 `json:"rate"`
}

// String は、バッチモードの一行出力形式を返します。
func (r Result) String() string {
	if r.Rate != nil {
		return fmt.Sprintf("URL: %s | ステータス: %s | 率: %.2f%%", r.URL, r.Status, *r.Rate)
	}
	return fmt.Sprintf("URL: %s | ステータス: %s | 率: -", r.URL, r.Status)
}
