// core/shard.go
package core

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hydrosignals/econet-linker/model"
)

// minShardFields is the mandatory positional field count of one shard row:
// node_id, asset_type, waterbody, region, profile, cin_baseline, cin_unit,
// q_avg, q_unit, horizon_s, ecoimpactscore, karma_per_unit. Fields past
// the twelfth are folded back into notes.
const minShardFields = 12

// decodeShardRow assembles one NodeMeta from tokenized fields. line is the
// 1-based source position (header counted as line 1) used in errors.
// Decoding is atomic: any failure discards the partial record.
func decodeShardRow(fields []string, line int) (model.NodeMeta, error) {
	if len(fields) < minShardFields {
		return model.NodeMeta{}, &DecodeError{
			Line: line,
			Msg:  "insufficient fields: " + strconv.Itoa(len(fields)) + " (want at least " + strconv.Itoa(minShardFields) + ")",
		}
	}

	parseFloat := func(idx int, name string) (float64, error) {
		v, err := strconv.ParseFloat(fields[idx], 64)
		if err != nil {
			return 0, &DecodeError{
				Line:  line,
				Field: name,
				Msg:   "cannot parse " + strconv.Quote(fields[idx]) + " as float",
			}
		}
		return v, nil
	}

	cin, err := parseFloat(5, "cin_baseline")
	if err != nil {
		return model.NodeMeta{}, err
	}
	q, err := parseFloat(7, "q_avg")
	if err != nil {
		return model.NodeMeta{}, err
	}
	horizon, err := parseFloat(9, "horizon_s")
	if err != nil {
		return model.NodeMeta{}, err
	}
	score, err := parseFloat(10, "ecoimpactscore")
	if err != nil {
		return model.NodeMeta{}, err
	}
	karma, err := parseFloat(11, "karma_per_unit")
	if err != nil {
		return model.NodeMeta{}, err
	}

	notes := ""
	if len(fields) > minShardFields {
		notes = strings.Join(fields[minShardFields:], ",")
	}

	return model.NodeMeta{
		NodeID:         model.NodeID(fields[0]),
		AssetType:      model.ParseAssetType(fields[1]),
		Waterbody:      fields[2],
		Region:         fields[3],
		Profile:        fields[4],
		CinBaseline:    cin,
		CinUnit:        model.ParseConcentrationUnit(fields[6]),
		QAvg:           q,
		QUnit:          model.ParseFlowUnit(fields[8]),
		HorizonSeconds: horizon,
		EcoImpactScore: score,
		KarmaPerUnit:   karma,
		Notes:          notes,
	}, nil
}

// LoadNodeMetas reads a shard from r: the first line is discarded as a
// header, blank lines are skipped, and every remaining line is tokenized
// and decoded in order. Loading is fail-fast; the first decode failure
// aborts the whole shard and no partial results are returned. An empty
// source (or header only) yields an empty, not erroneous, result.
func LoadNodeMetas(r io.Reader) ([]model.NodeMeta, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	var metas []model.NodeMeta
	for scanner.Scan() {
		line++
		if line == 1 {
			// Header: content ignored, position counted.
			continue
		}
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		meta, err := decodeShardRow(SplitLine(text), line)
		if err != nil {
			return nil, err
		}
		metas = append(metas, meta)
	}
	if err := scanner.Err(); err != nil {
		return nil, &AccessError{Err: err}
	}
	return metas, nil
}

// LoadShard opens path and decodes it with LoadNodeMetas. Open and read
// failures surface as *AccessError naming the path.
func LoadShard(path string) ([]model.NodeMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &AccessError{Source: path, Err: err}
	}
	defer f.Close()

	metas, err := LoadNodeMetas(f)
	if err != nil {
		if ae, ok := err.(*AccessError); ok && ae.Source == "" {
			ae.Source = path
		}
		return nil, err
	}
	return metas, nil
}

// BindShardConfigs binds every decoded row against the same global
// defaults, preserving shard order.
func BindShardConfigs(metas []model.NodeMeta, crefDefault, lambdaCLF, muCBF float64) []model.NodeConfig {
	configs := make([]model.NodeConfig, 0, len(metas))
	for _, meta := range metas {
		configs = append(configs, BindNodeConfig(meta, crefDefault, lambdaCLF, muCBF))
	}
	return configs
}

// LoadShardConfigs is the full shard pipeline: open, decode, and bind.
func LoadShardConfigs(path string, crefDefault, lambdaCLF, muCBF float64) ([]model.NodeConfig, error) {
	metas, err := LoadShard(path)
	if err != nil {
		return nil, err
	}
	return BindShardConfigs(metas, crefDefault, lambdaCLF, muCBF), nil
}
