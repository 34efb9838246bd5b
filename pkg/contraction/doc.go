// Package contraction 提供英文缩略形式的展开（如 "can't" → "cannot"）。
//
// 展开基于一张静态映射表 [Table]：表中的 key 为小写缩略形式，value 为完整形式。
// [Expander] 在构造时根据表中所有 key 编译一条不区分大小写的交替模式，
// 之后对输入文本做单次从左到右的扫描替换。
//
// # 匹配规则
//
//   - 仅替换完整单词：匹配片段外侧不能紧邻单词字符（ASCII 字母、数字、下划线）
//   - 片段内部允许出现撇号；以撇号开头的 key（如 "'cause"）要求撇号前为非单词字符或文本开头
//   - 交替分支按 key 长度降序排列，较长的 key（如 "won't've"）不会被其前缀（"won't"）截断
//
// # 大小写
//
// 仅检查匹配片段的首个字符：若为大写字母，则将展开结果的首字母大写，其余部分保持表中原样；
// 否则直接使用表中存储的展开结果。"i'd" 在表中已存储为 "I would"，不会被重复处理。
//
// # 快速开始
//
//	out := contraction.Expand("I can't believe you're here!")
//	// out == "I cannot believe you are here!"
//
// 使用自定义映射表：
//
//	table, err := contraction.DefaultTable().Merge(map[string]string{"gonna": "going to"})
//	if err != nil {
//	    return err
//	}
//	e := contraction.New(table, contraction.WithTypographicApostrophes())
//	out, n := e.ExpandN("I’m gonna go")
//
// [Expander] 构造完成后只读，可在多个 goroutine 间共享。
package contraction
