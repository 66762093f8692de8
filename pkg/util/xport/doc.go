// Package xport 解析端口规格表达式。
//
// 端口规格是逗号分隔的范围项，支持 '!' 取反和开放范围：
//
//	"22,80,443"          三个端口
//	"1-1024,!25"         1..1024 去掉 25
//	"65530-"             65530..65535
//	"-1024"              1..1024
//
// 求值采用集合运算：结果 = 所有非取反项的并集 − 所有取反项的并集，
// 与书写顺序无关。每一项先与端口域 [1, 65535] 求交，越界部分被静默丢弃，
// 只有形状错误的项才返回 [ErrSyntax]。集合底层使用 roaring bitmap。
//
// [Format] 是 [Parse] 的逆操作，把端口列表压缩回 "a-b" 形式。
package xport
