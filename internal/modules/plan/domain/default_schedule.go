package domain

// DefaultSchedule is the ultrasound attending-physician exam plan for the
// 2026-01-12 .. 2026-04-11 window.
func DefaultSchedule() Schedule {
	return Schedule{
		Ranges: []Range{
			{
				Start: 20260112,
				End:   20260131,
				Kind:  KindPhase,
				Plan: StudyPlan{
					Phase: "第一阶段：抢跑期与物理基础",
					Focus: "调整状态 & 夯实基础：声学原理、伪像、多普勒技术",
					Tasks: []string{
						"📖 教材精读：超声物理学基础章节（侧重：分辨力、衰减、调节）",
						"📺 视频课：多普勒效应原理与各类伪像产生机制详解",
						"📝 专项刷题：物理基础专项练习 30 题（提前进入备考状态）",
					},
				},
			},
			{
				Start: 20260201,
				End:   20260220,
				Kind:  KindPhase,
				Plan: StudyPlan{
					Phase: "第二阶段：腹部与消化系统",
					Focus: "系统突破：肝、胆、胰、脾、肾、消化道",
					Tasks: []string{
						"📖 知识点：弥漫性肝病、肝脏占位、胆系结石与肿瘤鉴别",
						"📺 视频课：腹部疑难病例图像解析（关注微小病变与鉴别诊断）",
						"📝 章节刷题：腹部系统真题 50 题 + 错题深度解析",
					},
				},
			},
			{
				Start: 20260221,
				End:   20260315,
				Kind:  KindPhase,
				Plan: StudyPlan{
					Phase: "第三阶段：心血管系统（攻坚战）",
					Focus: "攻克难点：心脏解剖、动力学、先心病、瓣膜病",
					Tasks: []string{
						"🎨 绘图记忆：默画心脏大血管短轴、四腔心、五腔心切面",
						"📺 视频课：法洛四联症、房/室间隔缺损、心肌病超声表现",
						"📝 强化刷题：心血管专项 60 题（重点突破血流动力学计算题）",
					},
				},
			},
			{
				Start: 20260316,
				End:   20260331,
				Kind:  KindPhase,
				Plan: StudyPlan{
					Phase: "第四阶段：妇产与浅表器官",
					Focus: "广度覆盖：产筛、子宫附件、甲状腺、乳腺",
					Tasks: []string{
						"📖 背诵表格：胎儿生长发育孕周表、TI-RADS / BI-RADS 分级",
						"📺 视频课：胎儿心脏筛查切面、异位妊娠、浅表淋巴结",
						"📝 综合刷题：妇产+浅表混合练习 60 题（注意细节考点）",
					},
				},
			},
			{
				Start: 20260401,
				End:   20260410,
				Kind:  KindPhase,
				Plan: StudyPlan{
					Phase: "第五阶段：冲刺与全真模拟",
					Focus: "查漏补缺：全真模拟、错题清零、数值背诵",
					Tasks: []string{
						"⏱️ 全真模考：严格按照考试时间进行 100 题测试 (人机对话模拟)",
						"📒 错题回顾：重做之前的错题本，确保盲点清零",
						"🧠 记忆突击：复习正常值范围、诊断标准等死记硬背内容",
					},
				},
			},
			{
				Start: 20260411,
				End:   20260411,
				Kind:  KindExamDay,
				Plan: StudyPlan{
					Phase: "决战日",
					Focus: "沉着冷静，金榜题名",
					Tasks: []string{"检查准考证和证件", "自信步入考场", "相信自己的判断"},
				},
			},
		},
		PreStart: StudyPlan{
			Phase: "预备阶段",
			Focus: "制定计划 & 资料整理",
			Tasks: []string{"整理教材与视频资源", "调整作息，准备开始备考", "熟悉考试大纲"},
		},
		PostExam: StudyPlan{
			Phase: "考试结束",
			Focus: "好好休息",
			Tasks: []string{"庆祝坚持下来的自己", "整理资料留存", "开启新的旅程"},
		},
	}
}
